package processor

//go:generate go run go.uber.org/mock/mockgen@latest -source=interfaces.go -destination=mocks_test.go -package=processor

import (
	"context"

	"callbridge/internal/clients/deepgram"
	"callbridge/internal/voice/pipeline"
)

// AgentConnector opens a configured speech-agent session
type AgentConnector interface {
	Connect(ctx context.Context, settings deepgram.Settings) (pipeline.Conn, error)
}

// CallPlacer starts outbound phone calls
type CallPlacer interface {
	PlaceCall(ctx context.Context, to, twiml string) (string, error)
}
