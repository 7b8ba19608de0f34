package credentials

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.toml")

	creds := New("abc123", "s3cr3t")
	require.NoError(t, creds.Save(path))

	loaded, err := Load(FromFile(path))
	require.NoError(t, err)
	assert.Equal(t, "abc123", loaded.ClientID())
	assert.Equal(t, "s3cr3t", loaded.Token())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestSaveOmitsEmptyFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.toml")

	require.NoError(t, New("abc123", "").Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "client_id")
	assert.NotContains(t, string(data), "token")

	loaded, err := Load(FromFile(path))
	require.NoError(t, err)
	assert.Equal(t, "abc123", loaded.ClientID())
	assert.Empty(t, loaded.Token())
}

func TestFromFile(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		write   bool
		op      string
	}{
		{
			name:  "missing file",
			write: false,
			op:    "read",
		},
		{
			name:    "malformed toml",
			content: "client_id = \n",
			write:   true,
			op:      "parse",
		},
		{
			name:    "wrong value type",
			content: "client_id = 42\n",
			write:   true,
			op:      "parse",
		},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, "creds"+string(rune('a'+i))+".toml")
			if tt.write {
				require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))
			}

			_, err := Load(FromFile(path))
			require.Error(t, err)

			var cfgErr *ConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.op, cfgErr.Op)
			assert.Equal(t, path, cfgErr.Path)
		})
	}
}

func TestFromFileIgnoresUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.toml")
	content := "client_id = \"id\"\ntoken = \"tok\"\nchannel_id = \"123\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	creds, err := Load(FromFile(path))
	require.NoError(t, err)
	assert.Equal(t, "id", creds.ClientID())
	assert.Equal(t, "tok", creds.Token())
}

func TestFromEnv(t *testing.T) {
	t.Run("both set", func(t *testing.T) {
		t.Setenv(EnvClientID, "env-id")
		t.Setenv(EnvToken, "env-token")

		creds, err := Load(FromEnv())
		require.NoError(t, err)
		assert.Equal(t, "env-id", creds.ClientID())
		assert.Equal(t, "env-token", creds.Token())
	})

	t.Run("both unset", func(t *testing.T) {
		// t.Setenv restores the previous values once the test ends
		t.Setenv(EnvClientID, "")
		t.Setenv(EnvToken, "")
		require.NoError(t, os.Unsetenv(EnvClientID))
		require.NoError(t, os.Unsetenv(EnvToken))

		creds, err := Load(FromEnv())
		require.NoError(t, err)
		assert.Equal(t, "", creds.ClientID())
		assert.Equal(t, "", creds.Token())

		err = creds.Snapshot().Validate()
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMissingCredentials)
	})
}

func TestLoadNilSource(t *testing.T) {
	_, err := Load(nil)
	require.Error(t, err)
}

func TestSetToken(t *testing.T) {
	creds := New("id", "old")
	before := creds.Snapshot()

	creds.SetToken("new")

	assert.Equal(t, "new", creds.Token())
	assert.Equal(t, "id", creds.ClientID())
	assert.Equal(t, "old", before.Token, "snapshot must not observe later rotation")
}

func TestSnapshotValidate(t *testing.T) {
	tests := []struct {
		name    string
		snap    Snapshot
		missing []string
	}{
		{name: "complete", snap: Snapshot{ClientID: "id", Token: "tok"}},
		{name: "no client id", snap: Snapshot{Token: "tok"}, missing: []string{"client_id"}},
		{name: "no token", snap: Snapshot{ClientID: "id"}, missing: []string{"token"}},
		{name: "empty", snap: Snapshot{}, missing: []string{"client_id", "token"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.snap.Validate()
			if tt.missing == nil {
				assert.NoError(t, err)
				return
			}

			var missing *MissingError
			require.True(t, errors.As(err, &missing))
			assert.Equal(t, tt.missing, missing.Fields)
			assert.ErrorIs(t, err, ErrMissingCredentials)
		})
	}
}

func TestConcurrentRotation(t *testing.T) {
	creds := New("id", "tok-0")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			creds.SetToken("tok-1")
		}()
		go func() {
			defer wg.Done()
			snap := creds.Snapshot()
			assert.Equal(t, "id", snap.ClientID)
			assert.Contains(t, []string{"tok-0", "tok-1"}, snap.Token)
		}()
	}
	wg.Wait()

	assert.Equal(t, "tok-1", creds.Token())
}

func TestSaveUnwritablePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "credentials.toml")

	err := New("id", "tok").Save(path)
	require.Error(t, err)

	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "write", cfgErr.Op)
}
