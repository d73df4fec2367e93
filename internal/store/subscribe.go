package store

import "context"

// subscribeCollection wires a hub subscription to a backend's one-shot
// snapshot read. Both backends share it, so Subscribe semantics cannot
// drift between them.
func subscribeCollection(h *hub, s Store, collection string, onSnapshot func([]Record), onError func(error)) (func(), error) {
	if _, ok := personCollections(collection); !ok {
		return nil, ErrUnknownCollection
	}
	cancel := h.subscribe(topicFor(collection), func() error {
		recs, err := s.Snapshot(context.Background(), collection)
		if err != nil {
			return err
		}
		onSnapshot(recs)
		return nil
	}, onError)
	return cancel, nil
}

func subscribeUsers(h *hub, s Store, onSnapshot func(admins, viewers []Record), onError func(error)) (func(), error) {
	cancel := h.subscribe("users", func() error {
		admins, viewers, err := s.Users(context.Background())
		if err != nil {
			return err
		}
		onSnapshot(admins, viewers)
		return nil
	}, onError)
	return cancel, nil
}
