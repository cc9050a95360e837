package params

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnvFile(t *testing.T) {
	content := `# attribution variables
product=Widget
vendor="ACME Inc."
subtitle='Open source notices'
footer=${vendor} confidential
`
	vars, err := ParseEnvFile([]byte(content))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"product":  "Widget",
		"vendor":   "ACME Inc.",
		"subtitle": "Open source notices",
		"footer":   "ACME Inc. confidential",
	}, vars)
}

func TestReadVarFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "vars.env")
	require.NoError(t, os.WriteFile(p, []byte("product=Widget\n"), 0644))

	vars, err := ReadVarFile(p)
	require.NoError(t, err)
	assert.Equal(t, "Widget", vars["product"])

	_, err = ReadVarFile(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}
