package notification

import (
	expo "github.com/oliveroneill/exponent-server-sdk-golang/sdk"
)

// expoChunkSize is the maximum number of recipients per Expo publish request.
const expoChunkSize = 100

type (
	// PushClient abstracts the Expo transport so the dispatcher can be tested
	// without the network.
	PushClient interface {
		PublishMultiple(messages []expo.PushMessage) ([]expo.PushResponse, error)
	}

	expoPushClient struct {
		client *expo.PushClient
	}
)

func NewExpoPushClient() PushClient {
	return &expoPushClient{client: expo.NewPushClient(nil)}
}

func (c *expoPushClient) PublishMultiple(messages []expo.PushMessage) ([]expo.PushResponse, error) {
	return c.client.PublishMultiple(messages)
}

func chunkTokens(tokens []expo.ExponentPushToken, size int) [][]expo.ExponentPushToken {
	var chunks [][]expo.ExponentPushToken
	for len(tokens) > 0 {
		n := size
		if len(tokens) < n {
			n = len(tokens)
		}
		chunks = append(chunks, tokens[:n])
		tokens = tokens[n:]
	}
	return chunks
}
