package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const testCatalogYAML = `packages:
  - id: box-s
    name: Small Box
    type: BOX
    length: 20
    breadth: 20
    height: 20
    max_weight: 5
    price_per_unit: "1.25"
    available_quantity: 10
`

func writeCatalogFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testCatalogYAML), 0o600))
	return path
}
