package orders

import (
	"testing"

	"savora/models"
)

func TestCanTransitionHappyPath(t *testing.T) {
	path := []string{
		models.StatusPending,
		models.StatusConfirmed,
		models.StatusPreparing,
		models.StatusFinished,
		models.StatusDelivered,
	}
	for i := 0; i < len(path)-1; i++ {
		if !CanTransition(path[i], path[i+1]) {
			t.Errorf("expected %s -> %s to be allowed", path[i], path[i+1])
		}
	}
}

func TestCanTransitionNoSkipping(t *testing.T) {
	if CanTransition(models.StatusPending, models.StatusDelivered) {
		t.Error("pending must not jump straight to delivered")
	}
	if CanTransition(models.StatusConfirmed, models.StatusFinished) {
		t.Error("confirmed must not skip preparing")
	}
}

func TestCanTransitionCancellation(t *testing.T) {
	for _, from := range []string{models.StatusPreorder, models.StatusPending, models.StatusConfirmed, models.StatusPreparing} {
		if !CanTransition(from, models.StatusCancelled) {
			t.Errorf("expected %s to be cancellable", from)
		}
	}
	if CanTransition(models.StatusFinished, models.StatusCancelled) {
		t.Error("finished orders must not be cancellable")
	}
}

func TestTerminalStatuses(t *testing.T) {
	for _, terminal := range []string{models.StatusDelivered, models.StatusCancelled} {
		for _, to := range models.OrderStatuses {
			if CanTransition(terminal, to) {
				t.Errorf("%s is terminal but allows transition to %s", terminal, to)
			}
		}
	}
}

func TestCanTransitionUnknownStatus(t *testing.T) {
	if CanTransition("bogus", models.StatusPending) {
		t.Error("unknown status must not transition anywhere")
	}
}
