package server

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/agentdms/admin/email"
	"github.com/agentdms/admin/fields"
	"github.com/agentdms/admin/generates"
	"github.com/agentdms/admin/permission"
	"github.com/agentdms/admin/store"
)

// Server wires the stores and evaluators behind the HTTP API.
type Server struct {
	Config *AppConfig
	Log    *logrus.Logger
	DB     *gorm.DB

	Users        *store.UserStore
	Roles        *store.RoleStore
	Permissions  *store.PermissionStore
	Projects     *store.ProjectStore
	Fields       *store.FieldStore
	Restrictions *store.RestrictionStore
	Documents    *store.DocumentStore
	Revocations  *store.RevocationStore
	Resets       *store.PasswordResetStore

	Authz     *permission.Service
	Evaluator *fields.Evaluator
	Tokens    *generates.JWTAccessGenerate
	Mailer    email.Sender
	Metrics   *Metrics
}

// NewServer builds a Server over an open database and KV backend.
func NewServer(cfg *AppConfig, db *gorm.DB, kv store.KV, mailer email.Sender, log *logrus.Logger) (*Server, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}
	if log == nil {
		log = logrus.New()
	}
	if mailer == nil {
		mailer = email.NewConsoleSender(log)
	}
	metrics := NewMetrics()
	roles := store.NewRoleStore(db)
	restrictions := store.NewRestrictionStore(db)
	return &Server{
		Config:       cfg,
		Log:          log,
		DB:           db,
		Users:        store.NewUserStore(db),
		Roles:        roles,
		Permissions:  store.NewPermissionStore(db),
		Projects:     store.NewProjectStore(db),
		Fields:       store.NewFieldStore(db),
		Restrictions: restrictions,
		Documents:    store.NewDocumentStore(db),
		Revocations:  store.NewRevocationStore(kv),
		Resets:       store.NewPasswordResetStore(kv, cfg.Reset.TTL),
		Authz:        permission.NewService(roles, metrics),
		Evaluator:    fields.NewEvaluator(restrictions, metrics),
		Tokens:       generates.NewJWTAccessGenerate(cfg.JWT.Issuer, cfg.JWT.Audience, []byte(cfg.JWT.Secret), cfg.JWT.TTL),
		Mailer:       mailer,
		Metrics:      metrics,
	}, nil
}

// NewLogger builds the process logger from LogConfig.
func NewLogger(cfg LogConfig) *logrus.Logger {
	logger := logrus.New()
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	if cfg.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger
}
