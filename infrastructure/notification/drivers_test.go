package notification

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"invoicing/config"
	"invoicing/domain/notification"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

var testMessage = notification.Message{
	To:        "john@example.com",
	Subject:   "Invoice for John Doe",
	Body:      "Please find your invoice attached.",
	Reference: "0192f0c4-7a4b-7c3e-9d1a-2b3c4d5e6f70",
}

func TestLogDriver(t *testing.T) {
	d := NewLogDriver()
	assert.Equal(t, "log", d.Name())
	assert.NoError(t, d.Send(context.Background(), testMessage))
}

type fakeMailSender struct {
	sent []*gomail.Message
	err  error
}

func (f *fakeMailSender) DialAndSend(m ...*gomail.Message) error {
	f.sent = append(f.sent, m...)
	return f.err
}

func TestSMTPDriver_Send(t *testing.T) {
	sender := &fakeMailSender{}
	d := &SMTPDriver{sender: sender, from: "billing@example.com"}

	require.NoError(t, d.Send(context.Background(), testMessage))

	require.Len(t, sender.sent, 1)
	m := sender.sent[0]
	assert.Equal(t, []string{"billing@example.com"}, m.GetHeader("From"))
	assert.Equal(t, []string{"john@example.com"}, m.GetHeader("To"))
	assert.Equal(t, []string{"Invoice for John Doe"}, m.GetHeader("Subject"))
	assert.Equal(t, []string{testMessage.Reference}, m.GetHeader(ReferenceHeader))
}

func TestSMTPDriver_SendError(t *testing.T) {
	d := &SMTPDriver{sender: &fakeMailSender{err: errors.New("535 authentication failed")}}

	err := d.Send(context.Background(), testMessage)

	assert.ErrorContains(t, err, "535 authentication failed")
}

func TestSMTPDriver_CancelledContext(t *testing.T) {
	sender := &fakeMailSender{}
	d := &SMTPDriver{sender: sender}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, d.Send(ctx, testMessage), context.Canceled)
	assert.Empty(t, sender.sent)
}

type fakeSES struct {
	input *sesv2.SendEmailInput
	err   error
}

func (f *fakeSES) SendEmail(_ context.Context, in *sesv2.SendEmailInput, _ ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	f.input = in
	if f.err != nil {
		return nil, f.err
	}
	return &sesv2.SendEmailOutput{MessageId: aws.String("ses-1")}, nil
}

func TestSESDriver_Send(t *testing.T) {
	client := &fakeSES{}
	d := &SESDriver{client: client, from: "billing@example.com", configurationSet: "receipts"}

	require.NoError(t, d.Send(context.Background(), testMessage))

	in := client.input
	require.NotNil(t, in)
	assert.Equal(t, "billing@example.com", aws.ToString(in.FromEmailAddress))
	assert.Equal(t, []string{"john@example.com"}, in.Destination.ToAddresses)
	assert.Equal(t, "Invoice for John Doe", aws.ToString(in.Content.Simple.Subject.Data))
	assert.Equal(t, testMessage.Body, aws.ToString(in.Content.Simple.Body.Text.Data))
	assert.Equal(t, "receipts", aws.ToString(in.ConfigurationSetName))
	require.Len(t, in.EmailTags, 1)
	assert.Equal(t, ReferenceTag, aws.ToString(in.EmailTags[0].Name))
	assert.Equal(t, testMessage.Reference, aws.ToString(in.EmailTags[0].Value))
}

func TestSESDriver_SendError(t *testing.T) {
	d := &SESDriver{client: &fakeSES{err: errors.New("MessageRejected")}}

	assert.ErrorContains(t, d.Send(context.Background(), testMessage), "MessageRejected")
}

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	f.msgs = append(f.msgs, msgs...)
	return f.err
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func TestKafkaDriver_Send(t *testing.T) {
	w := &fakeWriter{}
	d := &KafkaDriver{writer: w, topic: "notifications.outbound"}

	require.NoError(t, d.Send(context.Background(), testMessage))

	require.Len(t, w.msgs, 1)
	msg := w.msgs[0]
	assert.Equal(t, "notifications.outbound", msg.Topic)
	assert.Equal(t, testMessage.Reference, string(msg.Key))

	var payload OutboundMessage
	require.NoError(t, json.Unmarshal(msg.Value, &payload))
	assert.Equal(t, testMessage.Reference, payload.Reference)
	assert.Equal(t, testMessage.To, payload.To)
	assert.Equal(t, testMessage.Subject, payload.Subject)
	assert.Equal(t, testMessage.Body, payload.Body)
	assert.False(t, payload.CreatedAt.IsZero())

	require.NoError(t, d.Close())
	assert.True(t, w.closed)
}

func TestKafkaDriver_SendError(t *testing.T) {
	d := &KafkaDriver{writer: &fakeWriter{err: kafka.LeaderNotAvailable}, topic: "t"}

	assert.ErrorIs(t, d.Send(context.Background(), testMessage), kafka.LeaderNotAvailable)
}

func TestNewDriver(t *testing.T) {
	ctx := context.Background()

	d, closeFn, err := NewDriver(ctx, config.NotificationConfig{Driver: "log"})
	require.NoError(t, err)
	assert.Equal(t, "log", d.Name())
	assert.NoError(t, closeFn())

	d, _, err = NewDriver(ctx, config.NotificationConfig{Driver: "smtp", From: "a@b.c", SMTP: config.SMTPConfig{Host: "localhost", Port: 25}})
	require.NoError(t, err)
	assert.Equal(t, "smtp", d.Name())

	d, closeFn, err = NewDriver(ctx, config.NotificationConfig{Driver: "kafka", Kafka: config.KafkaConfig{Brokers: []string{"localhost:9092"}, NotifyTopic: "t"}})
	require.NoError(t, err)
	assert.Equal(t, "kafka", d.Name())
	assert.NoError(t, closeFn())

	_, closeFn, err = NewDriver(ctx, config.NotificationConfig{Driver: "fax"})
	assert.Error(t, err)
	assert.NotNil(t, closeFn)
}
