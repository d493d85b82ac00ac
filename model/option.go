package model

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultBatchSize      = 1000
	DefaultLogFile        = "sync.log"
	DefaultIgnoreFile     = "ignored_tables.txt"
	DefaultReservedPrefix = "_"
	DefaultStateTable     = "sync_state"
)

type Options struct {
	Source SourceOptions `yaml:"source"`
	Target TargetOptions `yaml:"target"`
	Mirror MirrorOptions `yaml:"mirror"`

	//set from the command line only
	FullSync     bool     `yaml:"-"`
	IgnoreTables []string `yaml:"-"`
}

type SourceOptions struct {
	Type     string `yaml:"type"` //mysql, pgsql, mssql, sqlite
	Addr     string `yaml:"addr"` //host:port, overrides host and port
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	Schema   string `yaml:"schema"`
	DSN      string `yaml:"dsn"` //used as is when set
}

type TargetOptions struct {
	Type string `yaml:"type"` //sqlite, duckdb
	Path string `yaml:"path"`
}

type MirrorOptions struct {
	BatchSize      int    `yaml:"batch_size"`
	LogFile        string `yaml:"log_file"`
	IgnoreFile     string `yaml:"ignore_file"`
	ReportFile     string `yaml:"report_file"`
	ReservedPrefix string `yaml:"reserved_prefix"`
	StateTable     string `yaml:"state_table"`
	Verbose        bool   `yaml:"verbose"`
}

func LoadOptions(path string) (*Options, error) {
	if path == "" {
		return nil, errors.New("config path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file -> %w", err)
	}

	opt := &Options{}
	if err := yaml.Unmarshal(data, opt); err != nil {
		return nil, fmt.Errorf("parse config -> %w", err)
	}
	return opt, nil
}

func (self *Options) Init() error {
	s := &self.Source
	s.Type = strings.ToLower(s.Type)

	//addr: host:port
	if s.Addr != "" {
		parts := strings.Split(s.Addr, ":")
		if len(parts) != 2 {
			return fmt.Errorf("source.addr is invalid: %s", s.Addr)
		}
		port, err := strconv.ParseUint(parts[1], 10, 16)
		if err != nil {
			return fmt.Errorf("source.addr port is invalid: %s", s.Addr)
		}
		s.Host = parts[0]
		s.Port = int(port)
	}

	switch s.Type {
	case "mysql":
		if s.Port == 0 {
			s.Port = 3306
		}
		if s.Schema == "" {
			s.Schema = s.Database
		}
	case "pgsql", "postgres":
		s.Type = "pgsql"
		if s.Port == 0 {
			s.Port = 5432
		}
		if s.Schema == "" {
			s.Schema = "public"
		}
	case "mssql", "sqlserver":
		s.Type = "mssql"
		if s.Port == 0 {
			s.Port = 1433
		}
		if s.Schema == "" {
			s.Schema = "dbo"
		}
	case "sqlite":
		if s.Database == "" && s.DSN == "" {
			return errors.New("source.database (file path) is required for sqlite")
		}
	default:
		return fmt.Errorf("source.type must be one of mysql, pgsql, mssql, sqlite: %q", s.Type)
	}

	if s.Type != "sqlite" && s.DSN == "" {
		if s.Host == "" {
			return errors.New("source.host is required")
		}
		if s.User == "" {
			return errors.New("source.user is required")
		}
		if s.Database == "" {
			return errors.New("source.database is required")
		}
	}

	t := &self.Target
	t.Type = strings.ToLower(t.Type)
	if t.Type == "" {
		t.Type = "sqlite"
	}
	if t.Type != "sqlite" && t.Type != "duckdb" {
		return fmt.Errorf("target.type must be sqlite or duckdb: %q", t.Type)
	}
	if t.Path == "" {
		t.Path = "analytics.db"
	}

	m := &self.Mirror
	if m.BatchSize < 0 {
		return fmt.Errorf("mirror.batch_size must be positive: %d", m.BatchSize)
	}
	if m.BatchSize == 0 {
		m.BatchSize = DefaultBatchSize
	}
	if m.LogFile == "" {
		m.LogFile = DefaultLogFile
	}
	if m.IgnoreFile == "" {
		m.IgnoreFile = DefaultIgnoreFile
	}
	if m.ReservedPrefix == "" {
		m.ReservedPrefix = DefaultReservedPrefix
	}
	if m.StateTable == "" {
		m.StateTable = DefaultStateTable
	}

	for i, tb := range self.IgnoreTables {
		self.IgnoreTables[i] = strings.ToLower(strings.TrimSpace(tb))
	}
	return nil
}
