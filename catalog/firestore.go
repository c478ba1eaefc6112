package catalog

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FirestoreSource streams the products collection through Firestore's
// snapshot listener.
type FirestoreSource struct {
	Client *firestore.Client
}

func NewFirestoreSource(client *firestore.Client) *FirestoreSource {
	return &FirestoreSource{Client: client}
}

func (s *FirestoreSource) Subscribe(onUpdate func([]RawDoc), onError func(error)) func() {
	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		it := s.Client.Collection("products").Snapshots(ctx)
		defer it.Stop()

		for {
			snap, err := it.Next()
			if err != nil {
				if status.Code(err) == codes.Canceled {
					return
				}
				onError(err)
				return
			}

			docs, err := snap.Documents.GetAll()
			if err != nil {
				onError(err)
				return
			}

			out := make([]RawDoc, 0, len(docs))
			for _, d := range docs {
				out = append(out, RawDoc{ID: d.Ref.ID, Data: d.Data()})
			}
			onUpdate(out)
		}
	}()

	return cancel
}
