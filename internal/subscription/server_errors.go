package subscription

import (
	"regexp"
	"strconv"

	appErrors "github.com/noah-isme/isp-backoffice-api/pkg/errors"
)

var subscriptionPath = regexp.MustCompile(`^bundleSubscriptions\[(\d+)\]\.(?:location\.)?(\w+)$`)

// ApplyServerErrors maps submit field errors back onto the editor. Paths of the
// form bundleSubscriptions[i].location.<field> land on the i-th entry; all other
// paths are returned as form-level errors. Indexes with no entry are returned
// in dropped.
func (e *Editor) ApplyServerErrors(fieldErrors []appErrors.FieldError) (form map[string]string, dropped []appErrors.FieldError) {
	form = map[string]string{}
	if e.Errors == nil {
		e.Errors = map[string]string{}
	}
	for _, fe := range fieldErrors {
		match := subscriptionPath.FindStringSubmatch(fe.Field)
		if match == nil {
			form[fe.Field] = fe.Message
			continue
		}
		idx, err := strconv.Atoi(match[1])
		if err != nil || idx >= len(e.Entries) {
			dropped = append(dropped, fe)
			continue
		}
		e.Errors[ErrorKey(match[2], e.Entries[idx].TempID)] = fe.Message
	}
	return form, dropped
}
