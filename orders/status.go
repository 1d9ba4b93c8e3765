package orders

import "savora/models"

// nextStatuses maps each order status to the statuses staff may move it to.
// Cancellation is allowed any time before the food leaves the kitchen.
var nextStatuses = map[string][]string{
	models.StatusPreorder:  {models.StatusPending, models.StatusCancelled},
	models.StatusPending:   {models.StatusConfirmed, models.StatusCancelled},
	models.StatusConfirmed: {models.StatusPreparing, models.StatusCancelled},
	models.StatusPreparing: {models.StatusFinished, models.StatusCancelled},
	models.StatusFinished:  {models.StatusDelivered},
	models.StatusDelivered: {},
	models.StatusCancelled: {},
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to string) bool {
	for _, s := range nextStatuses[from] {
		if s == to {
			return true
		}
	}
	return false
}
