package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"github.com/thanhpk/randstr"
)

const (
	// TraderListeningPortKey is the port where the gRPC Trader interface will
	// listen on.
	TraderListeningPortKey = "TRADER_LISTENING_PORT"
	// OperatorListeningPortKey is the port where the gRPC Operator interface
	// will listen on.
	OperatorListeningPortKey = "OPERATOR_LISTENING_PORT"
	// DatadirKey is the local data directory to store the internal state of
	// the daemon.
	DatadirKey = "DATADIR"
	// LogLevelKey are the different logging levels. For reference on the
	// values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// DBTypeKey is used to switch database type between those supported.
	DBTypeKey = "DB_TYPE"
	// TraderTLSKeyKey is the path of the the TLS key for the Trader interface.
	TraderTLSKeyKey = "TRADER_TLS_KEY"
	// TraderTLSCertKey is the path of the the TLS certificate for the Trader
	// interface.
	TraderTLSCertKey = "TRADER_TLS_CERT"
	// NoOperatorTlsKey is used to start the daemon without using TLS for the
	// operator service.
	NoOperatorTlsKey = "NO_OPERATOR_TLS"
	// OperatorExtraIPKey is used to add an extra ip address to the self-signed
	// TLS certificate for the Operator gRPC interface.
	OperatorExtraIPKey = "OPERATOR_EXTRA_IP"
	// OperatorExtraDomainKey is used to add an extra domain to the self signed
	// TLS certificate for the Operator gRPC interface.
	OperatorExtraDomainKey = "OPERATOR_EXTRA_DOMAIN"

	// StableAssetKey is the id of the stable unit every price is quoted
	// against, and the asset of the initial grant.
	StableAssetKey = "STABLE_ASSET"
	// StableAssetTickerKey is the ticker of the stable unit.
	StableAssetTickerKey = "STABLE_ASSET_TICKER"
	// InitialGrantKey is the amount of stable unit every participant receives
	// at registration.
	InitialGrantKey = "INITIAL_GRANT"
	// CredentialClassKey is the class of credential required to register
	// and trade.
	CredentialClassKey = "CREDENTIAL_CLASS"
	// CredentialSecretKey is the secret used to verify participants'
	// credentials. A random one is generated if not set.
	CredentialSecretKey = "CREDENTIAL_SECRET"
	// RegistrationStartKey and RegistrationEndKey are the optional bounds of
	// the registration window, in RFC3339 format. Both or none must be set.
	RegistrationStartKey = "REGISTRATION_START"
	RegistrationEndKey   = "REGISTRATION_END"
	// CompetitionStartKey and CompetitionEndKey are the bounds of the trading
	// window, in RFC3339 format.
	CompetitionStartKey = "COMPETITION_START"
	CompetitionEndKey   = "COMPETITION_END"
	// SupplyCapKey is the max total supply of any asset. Zero means no cap.
	SupplyCapKey = "SUPPLY_CAP"

	// PriceFeederEnabledKey enables the kraken price feeder.
	PriceFeederEnabledKey = "PRICE_FEEDER_ENABLED"
	// PriceFeederURLKey is the websocket endpoint of the price feeder.
	PriceFeederURLKey = "PRICE_FEEDER_URL"
	// PriceFeederIntervalKey is the interval in milliseconds between price
	// feeds.
	PriceFeederIntervalKey = "PRICE_FEEDER_INTERVAL"
	// PriceFeederMarketsKey is the list of fed markets, each in the form
	// <asset>:<ticker>, ie. btc:XBT/USD. Every market is quoted against the
	// stable asset.
	PriceFeederMarketsKey = "PRICE_FEEDER_MARKETS"
	// PriceFeederRateKey is the max number of price feeds applied per second.
	PriceFeederRateKey = "PRICE_FEEDER_RATE"

	// WebhooksEnabledKey enables the webhook pubsub service.
	WebhooksEnabledKey = "WEBHOOKS_ENABLED"
	// WebhookTimeoutKey is the timeout in seconds of webhook requests.
	WebhookTimeoutKey = "WEBHOOK_TIMEOUT"

	// MetricsPortKey is the port where prometheus metrics are exposed. Zero
	// disables the endpoint.
	MetricsPortKey = "METRICS_PORT"
	// EnableProfilerKey enables profiler that can be used to investigate
	// performance issues.
	EnableProfilerKey = "ENABLE_PROFILER"
	// StatsIntervalKey defines interval in seconds for printing basic
	// statistics.
	StatsIntervalKey = "STATS_INTERVAL"

	DbLocation       = "db"
	TLSLocation      = "tls"
	WebhooksLocation = "webhooks"
	ProfilerLocation = "stats"

	DBBadger   = "badger"
	DBInMemory = "inmem"
)

var vip *viper.Viper
var defaultDatadir = btcutil.AppDataDir("colosseumd", false)

func InitConfig() error {
	vip = viper.New()
	vip.SetEnvPrefix("COLOSSEUM")
	vip.AutomaticEnv()

	now := time.Now().UTC().Truncate(time.Second)

	vip.SetDefault(TraderListeningPortKey, 9945)
	vip.SetDefault(OperatorListeningPortKey, 9000)
	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(DatadirKey, defaultDatadir)
	vip.SetDefault(DBTypeKey, DBBadger)
	vip.SetDefault(NoOperatorTlsKey, false)
	vip.SetDefault(StableAssetKey, "fusd")
	vip.SetDefault(StableAssetTickerKey, "FUSD")
	vip.SetDefault(InitialGrantKey, "10000")
	vip.SetDefault(CredentialClassKey, "contestant")
	vip.SetDefault(CompetitionStartKey, now.Add(24*time.Hour).Format(time.RFC3339))
	vip.SetDefault(CompetitionEndKey, now.Add(8*24*time.Hour).Format(time.RFC3339))
	vip.SetDefault(SupplyCapKey, "0")
	vip.SetDefault(PriceFeederEnabledKey, false)
	vip.SetDefault(PriceFeederURLKey, "wss://ws.kraken.com")
	vip.SetDefault(PriceFeederIntervalKey, 1000)
	vip.SetDefault(PriceFeederMarketsKey, []string{"btc:XBT/USD", "eth:ETH/USD"})
	vip.SetDefault(PriceFeederRateKey, 10)
	vip.SetDefault(WebhooksEnabledKey, true)
	vip.SetDefault(WebhookTimeoutKey, 15)
	vip.SetDefault(MetricsPortKey, 0)
	vip.SetDefault(EnableProfilerKey, false)
	vip.SetDefault(StatsIntervalKey, 600)

	if err := validate(); err != nil {
		return fmt.Errorf("error while validating config: %s", err)
	}

	if err := initDatadir(); err != nil {
		return fmt.Errorf("error while creating datadir: %s", err)
	}

	if !vip.IsSet(CredentialSecretKey) {
		vip.Set(CredentialSecretKey, randstr.Hex(32))
	}

	return nil
}

func GetString(key string) string {
	return vip.GetString(key)
}

func GetInt(key string) int {
	return vip.GetInt(key)
}

func GetStringSlice(key string) []string {
	return vip.GetStringSlice(key)
}

func GetDuration(key string) time.Duration {
	return vip.GetDuration(key)
}

func GetBool(key string) bool {
	return vip.GetBool(key)
}

func GetDatadir() string {
	return GetString(DatadirKey)
}

// GetDecimal returns the value of the given key parsed as a decimal. Values
// are validated at init, therefore it panics if the value is not parsable.
func GetDecimal(key string) decimal.Decimal {
	return decimal.RequireFromString(GetString(key))
}

// GetTime returns the value of the given key parsed as an RFC3339 time, or
// nil if the key is not set.
func GetTime(key string) *time.Time {
	v := GetString(key)
	if v == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return nil
	}
	t = t.UTC()
	return &t
}

// Market is a market fed by the price feeder.
type Market struct {
	Asset  string
	Ticker string
}

// GetPriceFeederMarkets returns the parsed list of markets to feed.
func GetPriceFeederMarkets() []Market {
	markets, _ := parseMarkets(GetStringSlice(PriceFeederMarketsKey))
	return markets
}

func validate() error {
	datadir := GetString(DatadirKey)
	if len(datadir) <= 0 {
		return fmt.Errorf("missing datadir")
	}

	dbType := GetString(DBTypeKey)
	if dbType != DBBadger && dbType != DBInMemory {
		return fmt.Errorf(
			"%s must be either %s or %s", DBTypeKey, DBBadger, DBInMemory,
		)
	}

	tlsKey, tlsCert := GetString(TraderTLSKeyKey), GetString(TraderTLSCertKey)
	if (tlsKey == "" && tlsCert != "") || (tlsKey != "" && tlsCert == "") {
		return fmt.Errorf(
			"TLS for Trader interface requires both key and certificate when enabled",
		)
	}

	if GetString(StableAssetKey) == "" {
		return fmt.Errorf("missing stable asset")
	}
	if GetString(CredentialClassKey) == "" {
		return fmt.Errorf("missing credential class")
	}

	for _, key := range []string{InitialGrantKey, SupplyCapKey} {
		v, err := decimal.NewFromString(GetString(key))
		if err != nil {
			return fmt.Errorf("%s must be a valid number", key)
		}
		if v.IsNegative() {
			return fmt.Errorf("%s must not be negative", key)
		}
	}
	if GetDecimal(InitialGrantKey).IsZero() {
		return fmt.Errorf("%s must be greater than zero", InitialGrantKey)
	}

	for _, key := range []string{
		RegistrationStartKey, RegistrationEndKey,
		CompetitionStartKey, CompetitionEndKey,
	} {
		v := GetString(key)
		if v == "" {
			continue
		}
		if _, err := time.Parse(time.RFC3339, v); err != nil {
			return fmt.Errorf("%s must be a time in RFC3339 format", key)
		}
	}
	if GetTime(CompetitionStartKey) == nil || GetTime(CompetitionEndKey) == nil {
		return fmt.Errorf("competition start and end times must be set")
	}
	if (GetTime(RegistrationStartKey) == nil) != (GetTime(RegistrationEndKey) == nil) {
		return fmt.Errorf(
			"registration window requires both start and end when enabled",
		)
	}

	if GetBool(PriceFeederEnabledKey) {
		if GetInt(PriceFeederIntervalKey) <= 0 {
			return fmt.Errorf("%s must be greater than zero", PriceFeederIntervalKey)
		}
		if GetInt(PriceFeederRateKey) <= 0 {
			return fmt.Errorf("%s must be greater than zero", PriceFeederRateKey)
		}
		markets, err := parseMarkets(GetStringSlice(PriceFeederMarketsKey))
		if err != nil {
			return err
		}
		if len(markets) <= 0 {
			return fmt.Errorf("missing price feeder markets")
		}
	}

	if GetInt(WebhookTimeoutKey) <= 0 {
		return fmt.Errorf("%s must be greater than zero", WebhookTimeoutKey)
	}
	if port := GetInt(MetricsPortKey); port < 0 || port > 65535 {
		return fmt.Errorf("%s must be a valid port", MetricsPortKey)
	}

	return nil
}

func initDatadir() error {
	datadir := GetDatadir()
	if err := makeDirectoryIfNotExists(filepath.Join(datadir, DbLocation)); err != nil {
		return err
	}

	if GetBool(WebhooksEnabledKey) {
		if err := makeDirectoryIfNotExists(filepath.Join(datadir, WebhooksLocation)); err != nil {
			return err
		}
	}

	profilerEnabled := GetBool(EnableProfilerKey)
	if profilerEnabled {
		if err := makeDirectoryIfNotExists(filepath.Join(datadir, ProfilerLocation)); err != nil {
			return err
		}
	}

	noOperatorTls := GetBool(NoOperatorTlsKey)
	if !noOperatorTls {
		if err := makeDirectoryIfNotExists(filepath.Join(datadir, TLSLocation)); err != nil {
			return err
		}
	}
	return nil
}

func makeDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModeDir|0755)
	}
	return nil
}

func parseMarkets(list []string) ([]Market, error) {
	markets := make([]Market, 0, len(list))
	for _, m := range list {
		// Env values come as a single space or comma separated string.
		for _, entry := range strings.FieldsFunc(m, func(r rune) bool {
			return r == ',' || r == ' '
		}) {
			asset, ticker, ok := strings.Cut(entry, ":")
			if !ok || asset == "" || ticker == "" {
				return nil, fmt.Errorf(
					"invalid market %s, must be in the form <asset>:<ticker>", entry,
				)
			}
			markets = append(markets, Market{asset, ticker})
		}
	}
	return markets, nil
}
