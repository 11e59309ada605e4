package container

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/address-book/config"
	"github.com/oksasatya/address-book/internal/infrastructure/github"
	"github.com/oksasatya/address-book/pkg/helpers"
)

// app-level container to share constructed components across packages
// Router can auto-wire modules from these singletons.

var (
	cfg    *config.Config
	logger *logrus.Logger
	pgPool *pgxpool.Pool

	session *helpers.SessionManager
	ghub    *github.Client
)

func SetConfig(c *config.Config) { cfg = c }
func GetConfig() *config.Config  { return cfg }
func SetLogger(l *logrus.Logger) { logger = l }
func GetLogger() *logrus.Logger  { return logger }
func SetPGPool(p *pgxpool.Pool)  { pgPool = p }
func GetPGPool() *pgxpool.Pool   { return pgPool }

func SetSession(m *helpers.SessionManager) { session = m }
func GetSession() *helpers.SessionManager {
	if session != nil {
		return session
	}
	return helpers.DefaultSession()
}

func SetGithub(c *github.Client) { ghub = c }
func GetGithub() *github.Client  { return ghub }
