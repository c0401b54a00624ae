package datastore

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcmysql "github.com/testcontainers/testcontainers-go/modules/mysql"

	"github.com/geosemantic/skosload/internal/conf"
)

// TestMySQLImport exercises the MySQL store against a real server in a
// container. It only runs when SKOSLOAD_TEST_MYSQL is set, so the rest
// of the suite stays runnable without Docker.
func TestMySQLImport(t *testing.T) {
	if os.Getenv("SKOSLOAD_TEST_MYSQL") == "" {
		t.Skip("set SKOSLOAD_TEST_MYSQL to run the MySQL integration test")
	}
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	ctx := context.Background()

	container, err := tcmysql.Run(ctx, "mysql:8.0",
		tcmysql.WithDatabase("thesauri"),
		tcmysql.WithUsername("skosload"),
		tcmysql.WithPassword("skosload"),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, testcontainers.TerminateContainer(container))
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "3306/tcp")
	require.NoError(t, err)

	settings := &conf.Settings{}
	settings.Output.MySQL.Enabled = true
	settings.Output.MySQL.Username = "skosload"
	settings.Output.MySQL.Password = "skosload"
	settings.Output.MySQL.Database = "thesauri"
	settings.Output.MySQL.Host = host
	settings.Output.MySQL.Port = port.Port()

	store := &MySQLStore{Settings: settings}
	require.NoError(t, store.Open())
	t.Cleanup(func() {
		assert.NoError(t, store.Close())
	})

	_, err = store.ImportThesaurus(ctx, testMeta(), testConcepts(), ImportOptions{})
	require.NoError(t, err)

	// idempotence holds on MySQL as well
	_, err = store.ImportThesaurus(ctx, testMeta(), testConcepts(), ImportOptions{})
	require.NoError(t, err)

	counts, err := store.Counts()
	require.NoError(t, err)
	assert.Equal(t, RowCounts{Thesauri: 1, Keywords: 2, Labels: 4}, counts)
}
