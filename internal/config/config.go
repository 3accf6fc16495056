package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

//go:generate mockgen -package mocks -destination mocks/ssm.go . SSMClient

const (
	ssmPracticumToken = "practicum-token"
	ssmTelegramToken  = "telegram-token"
	ssmTelegramChatID = "telegram-chat-id"
)

type Config struct {
	Dev            bool          `envconfig:"DEV" default:"false"`
	Endpoint       string        `envconfig:"ENDPOINT" default:"https://practicum.yandex.ru/api/user_api/homework_statuses/"`
	RetryPeriod    time.Duration `envconfig:"RETRY_PERIOD" default:"10m"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"1m"`
	TelegramVerify bool          `envconfig:"TELEGRAM_VERIFY" default:"false"`
	SSMPrefix      string        `envconfig:"SSM_PREFIX"`

	PracticumToken string `envconfig:"PRACTICUM_TOKEN"`
	TelegramToken  string `envconfig:"TELEGRAM_TOKEN"`
	TelegramChatID string `envconfig:"TELEGRAM_CHAT_ID"`
}

type SSMClient interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// NewConfig reads .env (if present) and the process environment.
// Credentials are not required here, see CheckTokens.
func NewConfig(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	res := &Config{}
	if err := envconfig.Process("", res); err != nil {
		return nil, fmt.Errorf("envconfig process: %w", err)
	}
	if err := res.validate(); err != nil {
		return nil, err
	}

	if res.Dev || res.SSMPrefix == "" || res.CheckTokens() {
		return res, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	if err = res.LoadSSM(ctx, ssm.NewFromConfig(awsCfg)); err != nil {
		return nil, err
	}

	return res, nil
}

func (c *Config) validate() error {
	if c.RetryPeriod <= 0 {
		return fmt.Errorf("RETRY_PERIOD must be positive, got %s", c.RetryPeriod)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive, got %s", c.RequestTimeout)
	}
	return nil
}

// LoadSSM fills credentials that are still empty from Parameter Store.
// Parameters that do not exist are left empty for CheckTokens to report.
func (c *Config) LoadSSM(ctx context.Context, client SSMClient) error {
	targets := []struct {
		name  string
		value *string
	}{
		{name: ssmPracticumToken, value: &c.PracticumToken},
		{name: ssmTelegramToken, value: &c.TelegramToken},
		{name: ssmTelegramChatID, value: &c.TelegramChatID},
	}

	for _, t := range targets {
		if *t.value != "" {
			continue
		}
		v, err := getSSMParameter(ctx, client, c.SSMPrefix+"/"+t.name)
		if err != nil {
			return err
		}
		*t.value = v
	}

	return nil
}

// CheckTokens reports whether all credentials needed by the loop are set.
func (c *Config) CheckTokens() bool {
	return CheckTokens(c.PracticumToken, c.TelegramToken, c.TelegramChatID)
}

func CheckTokens(practicumToken, telegramToken, telegramChatID string) bool {
	return practicumToken != "" && telegramToken != "" && telegramChatID != ""
}

func getSSMParameter(ctx context.Context, client SSMClient, name string) (string, error) {
	param, err := client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(name),
		WithDecryption: aws.Bool(true),
	})
	var notFound *types.ParameterNotFound
	if errors.As(err, &notFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get SSM parameter %s: %w", name, err)
	}
	if param.Parameter == nil || param.Parameter.Value == nil {
		return "", nil
	}

	return *param.Parameter.Value, nil
}
