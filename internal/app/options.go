package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nats-io/nats.go"
	"github.com/nsqio/go-nsq"
	"github.com/segmentio/kafka-go"
	"github.com/shandysiswandi/vocatrack/internal/pkg/config"
	"github.com/shandysiswandi/vocatrack/internal/pkg/messaging"
	"github.com/shandysiswandi/vocatrack/internal/pkg/storage"
	"google.golang.org/api/option"
)

// The builders below translate config keys into driver settings without
// dialing anything.

func poolConfig(cfg config.Config) (*pgxpool.Config, error) {
	pc, err := pgxpool.ParseConfig(cfg.GetString("database.url"))
	if err != nil {
		return nil, err
	}

	if n := cfg.GetInt32("database.pool.max_conns"); n > 0 {
		pc.MaxConns = n
	}
	if n := cfg.GetInt32("database.pool.min_conns"); n > 0 {
		pc.MinConns = n
	}
	if d := cfg.GetSecond("database.pool.max_conn_lifetime_seconds"); d > 0 {
		pc.MaxConnLifetime = d
	}
	if d := cfg.GetSecond("database.pool.max_conn_idle_seconds"); d > 0 {
		pc.MaxConnIdleTime = d
	}
	if d := cfg.GetSecond("database.pool.health_check_period_seconds"); d > 0 {
		pc.HealthCheckPeriod = d
	}
	return pc, nil
}

func trimmed(cfg config.Config, key string) string {
	return strings.TrimSpace(cfg.GetString(key))
}

func storageOptions(cfg config.Config) (storage.FactoryOptions, error) {
	creds := cfg.GetBinary("storage.gcs.credentials_json")
	if path := trimmed(cfg, "storage.gcs.credentials_file"); path != "" && trimmed(cfg, "storage.driver") == storage.DriverGCS {
		// #nosec G304 -- path comes from the service config
		raw, err := os.ReadFile(path)
		if err != nil {
			return storage.FactoryOptions{}, fmt.Errorf("read gcs credentials file: %w", err)
		}
		creds = raw
	}

	return storage.FactoryOptions{
		S3: storage.S3Options{
			Region:       trimmed(cfg, "storage.s3.region"),
			Endpoint:     trimmed(cfg, "storage.s3.endpoint"),
			AccessKey:    trimmed(cfg, "storage.s3.access_key"),
			SecretKey:    trimmed(cfg, "storage.s3.secret_key"),
			SessionToken: trimmed(cfg, "storage.s3.session_token"),
			UsePathStyle: cfg.GetBool("storage.s3.use_path_style"),
		},
		GCS: storage.GCSOptions{
			CredentialsJSON:  creds,
			Endpoint:         trimmed(cfg, "storage.gcs.endpoint"),
			WithoutAuth:      cfg.GetBool("storage.gcs.without_auth"),
			SignerAccessID:   trimmed(cfg, "storage.gcs.signer_access_id"),
			SignerPrivateKey: cfg.GetBinary("storage.gcs.signer_private_key"),
		},
		MinIO: storage.MinIOOptions{
			Region:       trimmed(cfg, "storage.minio.region"),
			Endpoint:     trimmed(cfg, "storage.minio.endpoint"),
			AccessKey:    trimmed(cfg, "storage.minio.access_key"),
			SecretKey:    trimmed(cfg, "storage.minio.secret_key"),
			SessionToken: trimmed(cfg, "storage.minio.session_token"),
			UseSSL:       cfg.GetBool("storage.minio.use_ssl"),
		},
	}, nil
}

func messagingOptions(cfg config.Config) messaging.FactoryOptions {
	return messaging.FactoryOptions{
		NSQ:    nsqOptions(cfg),
		NATS:   natsOptions(cfg),
		Kafka:  kafkaOptions(cfg),
		PubSub: pubsubOptions(cfg),
	}
}

func nsqOptions(cfg config.Config) messaging.NSQConfig {
	client := nsq.NewConfig()
	if n := cfg.GetInt("messaging.nsq.max_in_flight"); n > 0 {
		client.MaxInFlight = n
	}
	if n := cfg.GetUint32("messaging.nsq.max_attempts"); n > 0 && n <= 65535 {
		client.MaxAttempts = uint16(n)
	}
	for key, dst := range map[string]*time.Duration{
		"messaging.nsq.lookupd_poll_interval_seconds": &client.LookupdPollInterval,
		"messaging.nsq.dial_timeout_seconds":          &client.DialTimeout,
		"messaging.nsq.read_timeout_seconds":          &client.ReadTimeout,
		"messaging.nsq.write_timeout_seconds":         &client.WriteTimeout,
		"messaging.nsq.max_requeue_delay_seconds":     &client.MaxRequeueDelay,
	} {
		if d := cfg.GetSecond(key); d > 0 {
			*dst = d
		}
	}

	return messaging.NSQConfig{
		ProducerAddr:  trimmed(cfg, "messaging.nsq.producer_addr"),
		NSQDAddrs:     cfg.GetArray("messaging.nsq.consumer_nsqd_addrs"),
		LookupdAddrs:  cfg.GetArray("messaging.nsq.consumer_lookupd_addrs"),
		RequeueDelay:  cfg.GetSecond("messaging.nsq.requeue_delay_seconds"),
		ClientOptions: client,
	}
}

func natsOptions(cfg config.Config) messaging.NATSConfig {
	return messaging.NATSConfig{
		URL: trimmed(cfg, "messaging.nats.url"),
		Options: []nats.Option{
			nats.Name(cfg.GetString("messaging.nats.name")),
			nats.MaxReconnects(cfg.GetInt("messaging.nats.max_reconnects")),
			nats.Timeout(cfg.GetSecond("messaging.nats.timeout_seconds")),
			nats.ReconnectWait(cfg.GetSecond("messaging.nats.reconnect_wait_seconds")),
			nats.PingInterval(cfg.GetSecond("messaging.nats.ping_interval_seconds")),
			nats.MaxPingsOutstanding(cfg.GetInt("messaging.nats.max_pings_outstanding")),
			nats.RetryOnFailedConnect(cfg.GetBool("messaging.nats.retry_on_failed_connect")),
		},
	}
}

func kafkaOptions(cfg config.Config) messaging.KafkaConfig {
	return messaging.KafkaConfig{
		Brokers: cfg.GetArray("messaging.kafka.brokers"),
		Dialer: &kafka.Dialer{
			ClientID:  cfg.GetString("messaging.kafka.client_id"),
			Timeout:   cfg.GetSecond("messaging.kafka.dial_timeout_seconds"),
			DualStack: true,
		},
	}
}

func pubsubOptions(cfg config.Config) messaging.PubSubConfig {
	var opts []option.ClientOption
	if endpoint := trimmed(cfg, "messaging.pubsub.endpoint"); endpoint != "" {
		opts = append(opts, option.WithEndpoint(endpoint))
	}
	if cfg.GetBool("messaging.pubsub.without_auth") {
		opts = append(opts, option.WithoutAuthentication())
	}
	return messaging.PubSubConfig{ProjectID: trimmed(cfg, "messaging.pubsub.project_id"), ClientOptions: opts}
}
