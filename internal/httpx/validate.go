package httpx

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	phoneRe    = regexp.MustCompile(`^\+?[0-9(][0-9 ().-]{5,19}$`)
	timeSlotRe = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)-([01]\d|2[0-3]):([0-5]\d)$`)

	registerOnce sync.Once
)

// RegisterValidators adds the phone and timeslot tags to gin's validator.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
			return ValidPhone(fl.Field().String())
		})
		_ = v.RegisterValidation("timeslot", func(fl validator.FieldLevel) bool {
			return ValidTimeSlot(fl.Field().String())
		})
	})
}

func ValidPhone(s string) bool {
	s = strings.TrimSpace(s)
	digits := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return phoneRe.MatchString(s) && digits >= 6
}

// ValidTimeSlot accepts "HH:MM-HH:MM" with the end after the start.
func ValidTimeSlot(s string) bool {
	m := timeSlotRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return false
	}
	return m[3]+m[4] > m[1]+m[2]
}

// ValidationMessage turns validator errors into a short readable message.
func ValidationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "invalid request: " + err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Namespace()
		if i := strings.Index(field, "."); i >= 0 {
			field = field[i+1:]
		}
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s: %s=%s", field, fe.Tag(), fe.Param()))
		} else {
			parts = append(parts, fmt.Sprintf("%s: %s", field, fe.Tag()))
		}
	}
	return "invalid request: " + strings.Join(parts, ", ")
}
