package itinerary

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks the document's structure: field constraints from the struct
// tags, then the cross-field rules tags cannot express.
func Validate(doc *Document) error {
	if err := validate.Struct(doc); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed on '%s'", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid itinerary: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid itinerary: %w", err)
	}

	for i, day := range doc.DailyPlan {
		if day.Day != i+1 {
			return fmt.Errorf("invalid itinerary: dailyPlan[%d] has day %d, want %d", i, day.Day, i+1)
		}
	}

	for _, g := range doc.Accommodation {
		for _, o := range g.Options {
			if o.PureVegetarian && o.VegetarianSourceLink == "" {
				return fmt.Errorf("invalid itinerary: %q in %s claims pure vegetarian without a source link", o.Name, g.Location)
			}
		}
	}
	return nil
}
