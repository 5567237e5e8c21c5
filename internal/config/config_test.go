package config_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/go-vcf2csv/internal/config"
)

// TestConstants_Integrity ensures critical constants are not empty or malformed.
func TestConstants_Integrity(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"AppName", config.AppName},
		{"AppID", config.AppID},
		{"Version", config.Version},
		{"UserAgent", config.UserAgent},
		{"DefaultInputFile", config.DefaultInputFile},
		{"ExtCSV", config.ExtCSV},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEmpty(t, tt.value, "Critical constant %s should not be empty", tt.name)
		})
	}
}

// TestColumns_Schema pins the importer header: 41 unique names in a fixed order.
func TestColumns_Schema(t *testing.T) {
	assert.Len(t, config.Columns, 41)
	assert.Equal(t, "First Name", config.Columns[0])
	assert.Equal(t, "UID", config.Columns[len(config.Columns)-1])

	seen := make(map[string]bool, len(config.Columns))
	for _, c := range config.Columns {
		assert.False(t, seen[c], "Duplicate column %q", c)
		seen[c] = true
	}

	for _, c := range config.EmailColumns {
		assert.True(t, seen[c], "E-mail column %q must belong to the schema", c)
	}

	expected := "First Name,Middle Name,Last Name,Title,Suffix,Nickname," +
		"E-mail Address,E-mail 2 Address,E-mail 3 Address," +
		"Home Phone,Home Phone 2,Business Phone,Business Phone 2,Mobile Phone,Other Phone,Primary Phone," +
		"IMAddress,Job Title,Department,Company,Office Location," +
		"Manager's Name,Assistant's Name,Assistant's Phone," +
		"Home Street,Home City,Home State,Home Postal Code,Home Country/Region," +
		"Personal Web Page,Spouse,Schools,Hobby,Location,Web Page," +
		"Birthday,Anniversary,Notes,kind,gender,UID"
	assert.Equal(t, expected, strings.Join(config.Columns, ","))
}

// TestUserAgent_Format ensures the UA string follows the standard format.
func TestUserAgent_Format(t *testing.T) {
	assert.True(t, strings.HasPrefix(config.UserAgent, "VCF2CSV/"), "UserAgent must start with AppName/")
}

// TestTimeoutsAndLimits ensures that operational constraints are reasonable.
func TestTimeoutsAndLimits(t *testing.T) {
	t.Parallel()

	assert.Greater(t, config.HTTPTimeout, 0*time.Second, "HTTPTimeout must be positive")
	assert.LessOrEqual(t, config.HTTPTimeout, 2*time.Minute, "HTTPTimeout should not be excessively long")
	assert.Greater(t, config.ShutdownTimeout, 0*time.Second, "ShutdownTimeout must be positive")

	assert.Greater(t, config.MaxInputSize, 0, "MaxInputSize must be positive")
	assert.Less(t, int64(config.MaxInputSize), int64(1*1024*1024*1024), "MaxInputSize should stay under 1GB to protect RAM")
}
