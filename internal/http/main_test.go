//go:build integration

package http

import (
	"context"
	"os"
	"testing"

	"github.com/guttosm/packaging-service/internal/testutil"
)

func TestMain(m *testing.M) {
	os.Exit(testutil.SetupTestMainWithMongoDB(context.Background(), m))
}
