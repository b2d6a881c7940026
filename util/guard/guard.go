// Package guard holds the ownership check applied before every mutation.
package guard

import "github.com/Kashh99/closet-backend/util/fault"

// Owns allows the action when the actor is the record's owning user.
func Owns(actorID, ownerID int64, msg string) error {
	if actorID != ownerID {
		return fault.New(fault.Forbidden, msg)
	}
	return nil
}

// Party allows the action when the actor is any of the listed parties.
func Party(actorID int64, msg string, partyIDs ...int64) error {
	for _, id := range partyIDs {
		if actorID == id {
			return nil
		}
	}
	return fault.New(fault.Forbidden, msg)
}
