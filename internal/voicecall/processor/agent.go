package processor

import (
	"context"

	"callbridge/internal/clients/deepgram"
	"callbridge/internal/voice/pipeline"
)

// DeepgramConnector adapts the Voice Agent client to AgentConnector.
type DeepgramConnector struct {
	Client *deepgram.Client
}

func (d DeepgramConnector) Connect(ctx context.Context, settings deepgram.Settings) (pipeline.Conn, error) {
	conn, err := d.Client.Connect(ctx, settings)
	if err != nil {
		return nil, err
	}
	return conn, nil
}
