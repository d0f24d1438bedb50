package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"

	"github.com/hita/aedip-telemedicina/pkg/domain/interfaces"
	"github.com/hita/aedip-telemedicina/pkg/domain/model"
)

type messageRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

var _ interfaces.MessageRepository = &messageRepository{}

func newMessageRepository(client *firestore.Client) *messageRepository {
	return &messageRepository{client: client}
}

func (r *messageRepository) messagesCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_messages"
	}
	return "messages"
}

func (r *messageRepository) Append(ctx context.Context, msg *model.Message) error {
	if _, err := r.client.Collection(r.messagesCollection()).Doc(msg.ID).Set(ctx, msg); err != nil {
		return goerr.Wrap(err, "failed to append message",
			goerr.V("message_id", msg.ID),
			goerr.V("case_id", msg.CaseID))
	}
	return nil
}

func (r *messageRepository) ListByCase(ctx context.Context, caseID int64) ([]*model.Message, error) {
	iter := r.client.Collection(r.messagesCollection()).
		Where("CaseID", "==", caseID).
		OrderBy("CreatedAt", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var messages []*model.Message
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list messages", goerr.V("case_id", caseID))
		}

		var m model.Message
		if err := doc.DataTo(&m); err != nil {
			return nil, goerr.Wrap(err, "failed to decode message", goerr.V("doc_id", doc.Ref.ID))
		}
		messages = append(messages, &m)
	}

	return messages, nil
}
