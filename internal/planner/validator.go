package planner

import (
	"fmt"

	"github.com/rhyrak/course-planner/pkg/model"
)

// Validate checks the cart for clashes, prerequisites missing from the cart
// and the credit limit. Returns false and a report for invalid carts.
// maxCredits <= 0 disables the credit check.
func Validate(cart []*model.Course, maxCredits float64) (bool, string) {
	var message string
	var valid bool = true
	var hasClash bool = false
	var missingPrerequisite bool = false
	var overLimit bool = false

	for _, c := range DetectClashes(cart) {
		valid = false
		hasClash = true
		message += fmt.Sprintf("- %s and %s clash on %s (%s / %s)\n", c.Course1ID, c.Course2ID, c.Day, c.Slot1.TimeRange, c.Slot2.TimeRange)
	}

	for _, c := range cart {
		if c == nil {
			continue
		}
		for _, p := range c.Prerequisites {
			if !inCourses(p, cart) {
				valid = false
				missingPrerequisite = true
				message += fmt.Sprintf("- %s requires %s which is not in the cart\n", c.ID, p)
			}
		}
	}

	credits := Summarize(cart).TotalCredits
	if maxCredits > 0 && credits > maxCredits {
		valid = false
		overLimit = true
		message += fmt.Sprintf("- Cart holds %.1f credits, limit is %.1f\n", credits, maxCredits)
	}

	if overLimit {
		message = "[FAIL]: Credit limit check.\n" + message
	} else {
		message = "[  OK]: Credit limit check.\n" + message
	}
	if missingPrerequisite {
		message = "[FAIL]: Prerequisite check.\n" + message
	} else {
		message = "[  OK]: Prerequisite check.\n" + message
	}
	if hasClash {
		message = "[FAIL]: Schedule clash check.\n" + message
	} else {
		message = "[  OK]: Schedule clash check.\n" + message
	}

	return valid, message
}
