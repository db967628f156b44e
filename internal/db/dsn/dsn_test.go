package dsn

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AgencyAdmin/AgencyAdmin/internal/config"
)

func TestCreate(t *testing.T) {
	tests := []struct {
		name string
		db   config.DB
		want string
	}{
		{
			name: "mysql",
			db: config.DB{
				GormEngine: config.EngineMySQL, User: "agency", Password: "secret",
				Host: "localhost", Port: 3306, Name: "agency", Extras: "parseTime=true",
			},
			want: "agency:secret@tcp(localhost:3306)/agency?parseTime=true",
		},
		{
			name: "postgres",
			db: config.DB{
				GormEngine: config.EnginePostgres, User: "agency", Password: "secret",
				Host: "db", Port: 5432, Name: "agency", Extras: "sslmode=disable",
			},
			want: "host=db port=5432 user=agency password=secret dbname=agency sslmode=disable",
		},
		{
			name: "sqlite",
			db:   config.DB{GormEngine: config.EngineSQLite, Name: "agency.db"},
			want: "agency.db",
		},
		{
			name: "sqlite with extras",
			db:   config.DB{GormEngine: config.EngineSQLite, Name: "agency.db", Extras: "_pragma=foreign_keys(1)"},
			want: "agency.db?_pragma=foreign_keys(1)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Create(&config.Config{DB: tt.db}))
		})
	}
}

func TestURI(t *testing.T) {
	pg := &config.Config{DB: config.DB{
		GormEngine: config.EnginePostgres, User: "agency", Password: "secret",
		Host: "db", Port: 5432, Name: "agency", Extras: "sslmode=disable",
	}}
	assert.Equal(t, "postgres://agency:secret@db:5432/agency?sslmode=disable", URI(pg))

	my := &config.Config{DB: config.DB{
		GormEngine: config.EngineMySQL, User: "u", Password: "p", Host: "h", Port: 3306, Name: "n",
	}}
	assert.Equal(t, Create(my), URI(my))

	assert.Empty(t, URI(&config.Config{DB: config.DB{GormEngine: config.EngineSQLite, Name: "x.db"}}))
}

func TestDialector(t *testing.T) {
	tests := []struct {
		engine string
		want   string
	}{
		{engine: config.EngineMySQL, want: "mysql"},
		{engine: config.EnginePostgres, want: "postgres"},
		{engine: config.EngineSQLite, want: "sqlite"},
	}

	for _, tt := range tests {
		t.Run(tt.engine, func(t *testing.T) {
			d := Dialector(&config.Config{DB: config.DB{GormEngine: tt.engine, Name: "agency"}})
			assert.Equal(t, tt.want, d.Name())
		})
	}
}
