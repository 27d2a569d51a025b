package externals

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

type SMSSender interface {
	SendSMS(ctx context.Context, phoneNumber string, message string) error
}

type snsPublisher interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type SNSSender struct {
	client snsPublisher
}

func NewSNSSender(ctx context.Context, region string) (*SNSSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}
	return &SNSSender{client: sns.NewFromConfig(cfg)}, nil
}

func (sender *SNSSender) SendSMS(ctx context.Context, phoneNumber string, message string) error {
	_, err := sender.client.Publish(ctx, &sns.PublishInput{
		PhoneNumber: aws.String(phoneNumber),
		Message:     aws.String(message),
	})
	if err != nil {
		return fmt.Errorf("error sending sms to %s: %w", phoneNumber, err)
	}
	return nil
}

func VerificationCodeSMS(code string) string {
	return fmt.Sprintf("Your Escapenote verification code is %s.", code)
}
