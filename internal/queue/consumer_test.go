package queue

import (
	"strings"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

func TestForward_RelaysDeliveries(t *testing.T) {
	msgs := make(chan amqp.Delivery, 1)
	merged := make(chan delivery, 1)
	done := make(chan struct{})

	msgs <- amqp.Delivery{Body: []byte(`{}`)}
	close(msgs)

	forward(QueueBookingRequested, msgs, merged, done)

	select {
	case d := <-merged:
		if d.queue != QueueBookingRequested {
			t.Errorf("queue: got %q, want %q", d.queue, QueueBookingRequested)
		}
	default:
		t.Fatal("delivery was not relayed")
	}
}

func TestForward_ReturnsWhenDoneWhileBlocked(t *testing.T) {
	msgs := make(chan amqp.Delivery, 1)
	merged := make(chan delivery) // unbuffered and never read
	done := make(chan struct{})

	msgs <- amqp.Delivery{Body: []byte(`{}`)}

	returned := make(chan struct{})
	go func() {
		forward(QueueBookingConfirmed, msgs, merged, done)
		close(returned)
	}()

	// The forwarder is parked on the merged send; closing done must
	// release it.
	close(done)

	select {
	case <-returned:
	case <-time.After(2 * time.Second):
		t.Fatal("forward did not return after done closed; goroutine would leak on reconnect")
	}
}

func TestFormatNotification_RoutesCancellationToCounterparty(t *testing.T) {
	ev := BookingEvent{
		BookingID:    9,
		StudentEmail: "student@it.test",
		MentorEmail:  "mentor@it.test",
		StartAt:      "2026-09-08T09:00:00Z",
		CancelledBy:  "MENTOR",
	}
	line := formatNotification(QueueBookingCancelled, ev)
	if !strings.Contains(line, "to=student@it.test") {
		t.Errorf("mentor-cancelled line %q should address the student", line)
	}

	ev.CancelledBy = "STUDENT"
	line = formatNotification(QueueBookingCancelled, ev)
	if !strings.Contains(line, "to=mentor@it.test") {
		t.Errorf("student-cancelled line %q should address the mentor", line)
	}
}
