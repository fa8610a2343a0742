package rmqconsumer

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/require"

	"audio-vault-api/internal/infrastructure/mq"
)

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	defer func() { os.Stdout = old }()

	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	_ = w.Close()
	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	_ = r.Close()
	return buf.String()
}

func Test_delivery_Table(t *testing.T) {
	type tc struct {
		name       string
		routingKey string
		body       string
		wantOut    string
	}
	cases := []tc{
		{"login", mq.ActionUserLogin, `{"id":1}`, "Action=UserLoggedIn EventBody={\"id\":1}\n"},
		{"user deleted", mq.ActionUserDeleted, `{"id":2}`, "Action=UserDeleted EventBody={\"id\":2}\n"},
		{"file uploaded", mq.ActionFileUploaded, `{"id":3}`, "Action=AudioFileUploaded EventBody={\"id\":3}\n"},
		{"file deleted", mq.ActionFileDeleted, `{"id":4}`, "Action=AudioFileDeleted EventBody={\"id\":4}\n"},
		{"unknown -> empty", "user.unknown", `{"id":5}`, "Action= EventBody={\"id\":5}\n"},
	}

	for _, tt := range cases {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			c := &Consumer{}
			out := captureStdout(t, func() {
				msg := amqp091.Delivery{RoutingKey: tt.routingKey, Body: []byte(tt.body)}
				err := c.delivery(msg)
				require.NoError(t, err)
			})
			require.Equal(t, tt.wantOut, out)
		})
	}
}
