package dsn

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/N2Core/N2Identity/internal/config"
)

func TestCreate(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.DB
		want string
	}{
		{
			name: "mysql with extras",
			cfg: config.DB{
				Engine: config.EngineMySQL, Host: "db", Port: 3306,
				User: "n2", Password: "pw", Name: "identity", Extras: "parseTime=True",
			},
			want: "n2:pw@tcp(db:3306)/identity?parseTime=True",
		},
		{
			name: "mysql without extras",
			cfg:  config.DB{Engine: config.EngineMySQL, Host: "db", Port: 3306, User: "n2", Password: "pw", Name: "identity"},
			want: "n2:pw@tcp(db:3306)/identity",
		},
		{
			name: "postgres",
			cfg: config.DB{
				Engine: config.EnginePostgres, Host: "pg", Port: 5432,
				User: "n2", Password: "pw", Name: "identity", Extras: "sslmode=disable",
			},
			want: "host=pg port=5432 user=n2 password=pw dbname=identity sslmode=disable",
		},
		{
			name: "sqlite file",
			cfg:  config.DB{Engine: config.EngineSQLite, Path: "n2.db", Extras: "_pragma=foreign_keys(1)"},
			want: "n2.db?_pragma=foreign_keys(1)",
		},
		{
			name: "sqlite memory",
			cfg:  config.DB{Engine: config.EngineSQLite, Path: ":memory:"},
			want: ":memory:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Create(tt.cfg))
		})
	}
}
