package config

import (
	"fmt"
	"time"
)

type Configs struct {
	Env string `toml:"env"`

	ApiServer ServerConfigs   `toml:"api_server"`
	Database  DatabaseConfigs `toml:"database"`
	Redis     RedisConfigs    `toml:"redis"`
	Kafka     KafkaConfigs    `toml:"kafka"`
	Auth      AuthConfigs     `toml:"auth"`
	Chain     ChainConfigs    `toml:"chain"`
	Subgraph  SubgraphConfigs `toml:"subgraph"`
	Services  ServiceConfigs  `toml:"services"`
}

type ServerConfigs struct {
	Host string `toml:"host"`
	Port string `toml:"port"`
	Cert string `toml:"cert"`
	Key  string `toml:"key"`

	DefaultLimit int      `toml:"default_limit"`
	MaxLimit     int      `toml:"max_limit"`
	AllowOrigins []string `toml:"allow_origins"`
}

func (s ServerConfigs) Address() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

type DatabaseConfigs struct {
	Host     string `toml:"host"`
	Port     string `toml:"port"`
	Database string `toml:"database"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

func (d DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type RedisConfigs struct {
	Addr string `toml:"addr"`
}

type KafkaConfigs struct {
	Addr       string `toml:"addr"`
	AuditTopic string `toml:"audit_topic"`
}

type AuthConfigs struct {
	AccessToken TokenConfigs `toml:"access_token"`
}

type TokenConfigs struct {
	Name       string        `toml:"name"`
	Secret     string        `toml:"secret"`
	Expiration time.Duration `toml:"expiration"`
}

type ChainConfigs struct {
	Chain      string   `toml:"chain"`
	ChainID    int64    `toml:"chain_id"`
	Rpcs       []string `toml:"rpcs"`
	UseEip1559 bool     `toml:"use_eip_1559"` // For gas calculation

	// PrivKey is the hex-encoded private key of the admin wallet. Leaving it
	// empty means no wallet is connected and every signing operation fails
	// fast before any network call.
	PrivKey string `toml:"priv_key"`

	// ConfirmInterval is how often the watcher polls for a transaction
	// receipt, ConfirmTimeout is how long it keeps polling before giving up.
	ConfirmInterval time.Duration `toml:"confirm_interval"`
	ConfirmTimeout  time.Duration `toml:"confirm_timeout"`

	Contracts ContractConfigs `toml:"contracts"`
}

type ContractConfigs struct {
	Streak         string `toml:"streak"`
	RewardsManager string `toml:"rewards_manager"`
	Cleanup        string `toml:"cleanup"`
	UserRegistry   string `toml:"user_registry"`
}

type SubgraphConfigs struct {
	URL      string `toml:"url"`
	PageSize int    `toml:"page_size"`
}

// ServiceConfigs carries the default base URLs of the external admin
// services. Operators can override them per service through the credential
// store.
type ServiceConfigs struct {
	KycURL   string `toml:"kyc_url"`
	BankURL  string `toml:"bank_url"`
	EmailURL string `toml:"email_url"`
}
