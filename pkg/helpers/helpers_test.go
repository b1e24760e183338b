package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultOutputFile(t *testing.T) {
	now := time.Date(2024, 3, 7, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, "2024_03_07-03_04_05_PM.txt", DefaultOutputFile(now))
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "ssl-heartbleed", DisplayName("ssl-heartbleed.nse"))
	assert.Equal(t, "script.db", DisplayName("script.db"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "smb-vuln", Truncate("smb-vuln-ms17-010", 8))
	assert.Equal(t, "ftp", Truncate("ftp", 8))
}

func TestIDGeneratorIsOrdered(t *testing.T) {
	gen := IDGenerator()
	a := gen.Generate()
	b := gen.Generate()
	assert.NotEqual(t, a, b)
	assert.Equal(t, uint8(1), uint8(a.Version()))
}

func TestFindBinaryMissing(t *testing.T) {
	info := FindBinary("definitely-not-a-real-binary-name")
	assert.Error(t, info.Error)
	assert.Empty(t, info.PathInPATH)
}
