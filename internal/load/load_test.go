package load

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	kiterrors "github.com/threatflux/statekit/internal/errors"
	"github.com/threatflux/statekit/internal/rconfig"
)

type fakeEnv struct{ vars map[string]string }

func (f *fakeEnv) Get(_ context.Context, name string) (string, bool, error) {
	v, ok := f.vars[name]
	return v, ok, nil
}

type fakeInMemory struct{ values map[string]any }

func (f *fakeInMemory) Get(_ context.Context, key string) (any, bool, error) {
	v, ok := f.values[key]
	return v, ok, nil
}
func (f *fakeInMemory) Set(_ context.Context, key string, value any) error {
	f.values[key] = value
	return nil
}
func (f *fakeInMemory) Delete(_ context.Context, key string) (bool, error) {
	_, ok := f.values[key]
	delete(f.values, key)
	return ok, nil
}

type fakeDb struct {
	rows []map[string]any
	err  error
}

func (f *fakeDb) Fetch(_ context.Context, _ map[string]any, _ string, _ []string, _ string) ([]map[string]any, error) {
	return f.rows, f.err
}

func TestFacade_EnvProjectsMappedVars(t *testing.T) {
	facade := NewFacade(&fakeEnv{vars: map[string]string{"DB_HOST": "localhost", "DB_PORT": "5432"}}, nil, nil, nil)
	cfg := rconfig.Config{"client": "Env", "map": map[string]string{"host": "DB_HOST", "port": "DB_PORT"}}

	v, err := facade.Get(context.Background(), cfg)
	require.NoError(t, err)
	require.Equal(t, map[string]any{"host": "localhost", "port": "5432"}, v)
}

func TestFacade_EnvOmitsUnsetVars(t *testing.T) {
	facade := NewFacade(&fakeEnv{vars: map[string]string{"DB_HOST": "localhost"}}, nil, nil, nil)
	cfg := rconfig.Config{"client": "Env", "map": map[string]string{"host": "DB_HOST", "port": "DB_PORT"}}

	v, err := facade.Get(context.Background(), cfg)
	require.NoError(t, err)
	require.Equal(t, map[string]any{"host": "localhost"}, v)
}

func TestFacade_InMemoryGet(t *testing.T) {
	facade := NewFacade(nil, &fakeInMemory{values: map[string]any{"session.sso_user_id": 42}}, nil, nil)
	cfg := rconfig.Config{"client": "InMemory", "key": "session.sso_user_id"}

	v, err := facade.Get(context.Background(), cfg)
	require.NoError(t, err)
	require.Equal(t, 42, v)
}

func TestFacade_DbProjectsFirstRowThroughMap(t *testing.T) {
	db := &fakeDb{rows: []map[string]any{{"id": 1, "sso_org_id": 100}}}
	facade := NewFacade(nil, nil, nil, db)
	cfg := rconfig.Config{
		"client":     "Db",
		"connection": map[string]any{"driver": "sqlite", "dsn": ":memory:"},
		"table":      "users",
		"where":      "sso_user_id=1",
		"map":        map[string]string{"id": "id", "org_id": "sso_org_id"},
	}

	v, err := facade.Get(context.Background(), cfg)
	require.NoError(t, err)
	require.Equal(t, map[string]any{"id": 1, "org_id": 100}, v)
}

func TestFacade_DbEmptyResultIsAnError(t *testing.T) {
	db := &fakeDb{rows: nil}
	facade := NewFacade(nil, nil, nil, db)
	cfg := rconfig.Config{
		"client": "Db",
		"table":  "users",
		"map":    map[string]string{"id": "id"},
	}

	_, err := facade.Get(context.Background(), cfg)
	require.Error(t, err)
}

func TestFacade_UnconfiguredAdapterIsLoadFailed(t *testing.T) {
	facade := NewFacade(nil, nil, nil, nil)
	cfg := rconfig.Config{"client": "Env", "map": map[string]string{}}

	_, err := facade.Get(context.Background(), cfg)
	require.Error(t, err)
	require.ErrorIs(t, err, kiterrors.ErrLoadFailed)
}

func TestFacade_UnsupportedClientIsLoadFailed(t *testing.T) {
	facade := NewFacade(nil, nil, nil, nil)
	cfg := rconfig.Config{"client": "API"}

	_, err := facade.Get(context.Background(), cfg)
	require.Error(t, err)
	require.ErrorIs(t, err, kiterrors.ErrLoadFailed)
}
