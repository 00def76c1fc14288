package corpus

import (
	"github.com/gobeaver/cipherkit/config"
)

// Config holds word list storage configuration
type Config struct {
	// Driver to use: local, s3, gcs, azblob, sftp
	Driver string `env:"DRIVER" envDefault:"local"`

	// Local driver configuration
	LocalBasePath string `env:"LOCAL_BASE_PATH" envDefault:"."`

	// S3 driver configuration
	S3Region          string `env:"S3_REGION" envDefault:"us-east-1"`
	S3Bucket          string `env:"S3_BUCKET"`
	S3Prefix          string `env:"S3_PREFIX"`
	S3Endpoint        string `env:"S3_ENDPOINT"`
	S3AccessKeyID     string `env:"S3_ACCESS_KEY_ID"`
	S3SecretAccessKey string `env:"S3_SECRET_ACCESS_KEY"`
	S3ForcePathStyle  bool   `env:"S3_FORCE_PATH_STYLE" envDefault:"false"`

	// Google Cloud Storage
	GCSBucket          string `env:"GCS_BUCKET"`
	GCSPrefix          string `env:"GCS_PREFIX"`
	GCSCredentialsFile string `env:"GCS_CREDENTIALS_FILE"`
	GCSEndpoint        string `env:"GCS_ENDPOINT"`

	// Azure Blob Storage
	AzureConnectionString string `env:"AZURE_CONNECTION_STRING"`
	AzureContainer        string `env:"AZURE_CONTAINER"`
	AzurePrefix           string `env:"AZURE_PREFIX"`

	// SFTP
	SFTPHost           string `env:"SFTP_HOST"`
	SFTPPort           int    `env:"SFTP_PORT" envDefault:"22"`
	SFTPUser           string `env:"SFTP_USER"`
	SFTPPassword       string `env:"SFTP_PASSWORD"`
	SFTPKeyFile        string `env:"SFTP_KEY_FILE"`
	SFTPKnownHostsFile string `env:"SFTP_KNOWN_HOSTS_FILE"`
	SFTPBasePath       string `env:"SFTP_BASE_PATH"`

	// Maximum bytes read from a single word list, 0 for no limit
	MaxFileSize int64 `env:"MAX_FILE_SIZE" envDefault:"67108864"`
}

// GetConfig loads configuration from environment variables (prefix BEAVER_CORPUS_).
func GetConfig(opts ...config.Option) (*Config, error) {
	o := config.Apply(append([]config.Option{config.WithPrefix("BEAVER_CORPUS_")}, opts...)...)
	cfg := &Config{}
	if err := config.Load(cfg, o); err != nil {
		return nil, err
	}
	return cfg, nil
}
