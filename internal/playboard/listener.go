package playboard

import "github.com/jask/puzboard/internal/puz"

// Listener receives board changes. previous is nil on the first notification.
type Listener interface {
	OnPlayboardChange(wholeBoard bool, current puz.Word, previous *puz.Word)
}

type ListenerFunc func(wholeBoard bool, current puz.Word, previous *puz.Word)

func (f ListenerFunc) OnPlayboardChange(wholeBoard bool, current puz.Word, previous *puz.Word) {
	f(wholeBoard, current, previous)
}

// Subscription identifies a registered listener.
type Subscription uint64

type subscriber struct {
	id       Subscription
	listener Listener
}

// AddListener registers l. Listeners are notified in registration order.
func (b *Playboard) AddListener(l Listener) Subscription {
	b.nextSub++
	b.listeners = append(b.listeners, subscriber{id: b.nextSub, listener: l})
	return b.nextSub
}

// RemoveListener unregisters a subscription. Unknown subscriptions are ignored.
func (b *Playboard) RemoveListener(s Subscription) {
	for i, sub := range b.listeners {
		if sub.id == s {
			b.listeners = append(b.listeners[:i:i], b.listeners[i+1:]...)
			return
		}
	}
}

func (b *Playboard) pushNotificationDisabled() { b.suppressDepth++ }

func (b *Playboard) popNotificationDisabled() {
	if b.suppressDepth > 0 {
		b.suppressDepth--
	}
}

// notifyChange fires listeners unless a compound operation is in progress.
func (b *Playboard) notifyChange(wholeBoard bool) {
	if b.suppressDepth > 0 {
		return
	}
	b.updateHistory()

	current := b.CurrentWord()
	previous := b.previousWord
	subs := append([]subscriber(nil), b.listeners...)
	for _, s := range subs {
		s.listener.OnPlayboardChange(wholeBoard, current, previous)
	}
	b.previousWord = &current
}

func (b *Playboard) updateHistory() {
	if number := b.ClueNumber(); number > 0 {
		b.puzzle.UpdateHistory(number, b.across)
	}
}
