package rmqconsumer

import (
	"bytes"
	"errors"
	"testing"

	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"imageresizer/config"
)

func Test_delivery_Table(t *testing.T) {
	type tc struct {
		name       string
		routingKey string
		body       string
		wantOut    string
	}
	cases := []tc{
		{"user.registered -> UserRegistered", "user.registered", `{"id":1}`, "Action=UserRegistered EventBody={\"id\":1}\n"},
		{"image.uploaded -> ImageUploaded", "image.uploaded", `{"id":2}`, "Action=ImageUploaded EventBody={\"id\":2}\n"},
		{"image.resized -> ImageResized", "image.resized", `{"id":3}`, "Action=ImageResized EventBody={\"id\":3}\n"},
		{"image.deleted -> ImageDeleted", "image.deleted", `{"id":4}`, "Action=ImageDeleted EventBody={\"id\":4}\n"},
		{"unknown -> Unknown", "image.rotated", `{"id":5}`, "Action=Unknown EventBody={\"id\":5}\n"},
	}

	for _, tt := range cases {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			c := &Consumer{out: &out}

			err := c.delivery(amqp091.Delivery{RoutingKey: tt.routingKey, Body: []byte(tt.body)})
			require.NoError(t, err)
			require.Equal(t, tt.wantOut, out.String())
		})
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func Test_delivery_WriteError(t *testing.T) {
	c := &Consumer{out: failingWriter{}}

	err := c.delivery(amqp091.Delivery{RoutingKey: "image.deleted"})
	require.Error(t, err)
}

func TestConnect_InvalidDSN(t *testing.T) {
	c := New(config.MQ{}, zap.NewNop(), nil)

	err := c.Connect("amqp://bad:://dsn")
	require.Error(t, err)
	require.Nil(t, c.chConsume)
	require.Nil(t, c.conn)
}

func TestInit_NotConnected(t *testing.T) {
	c := New(config.MQ{}, zap.NewNop(), nil)

	require.Error(t, c.Init([]string{"image.*"}))
}
