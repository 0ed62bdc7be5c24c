package mongo

import (
	"fmt"
	"regexp"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"julianmorley.ca/con-plar/storefront/pkg/global"
)

var dupKeyField = regexp.MustCompile(`dup key: \{\s*"?([A-Za-z0-9_.]+)"?\s*:`)

// translateWriteError turns duplicate key violations into client errors and
// wraps everything else.
func translateWriteError(err error, message string) error {
	if mongo.IsDuplicateKeyError(err) {
		field := DuplicateKeyField(err.Error())
		return global.BadRequest(fmt.Sprintf("Duplicate field value: %s. Please use another value.", field)).WithCause(err)
	}
	return errors.Wrap(err, message)
}

// DuplicateKeyField extracts the offending field from a server E11000 message.
func DuplicateKeyField(message string) string {
	if m := dupKeyField.FindStringSubmatch(message); len(m) == 2 {
		return m[1]
	}
	return "unknown"
}
