package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-xr/internal/apperror"
	"github.com/tidwall/gjson"
)

// OptionCount is the number of answers a persisted record must carry.
const OptionCount = 9

// OptionSet is the record written by the setup flow. RightAnswers and Topic
// are carried along but never enforced.
type OptionSet struct {
	Options      []string `json:"options"`
	RightAnswers []string `json:"rightAnswers,omitempty"`
	Topic        string   `json:"topic,omitempty"`
}

// ParseOptionSet decodes a persisted record. Any structural problem (invalid
// JSON, missing or non-array options, wrong length, non-string entries) is
// reported as apperror.ErrMalformedOptions.
func ParseOptionSet(data []byte) (*OptionSet, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: invalid json", apperror.ErrMalformedOptions)
	}

	options := gjson.GetBytes(data, "options")
	if !options.IsArray() {
		return nil, fmt.Errorf("%w: options is not an array", apperror.ErrMalformedOptions)
	}

	items := options.Array()
	if len(items) != OptionCount {
		return nil, fmt.Errorf("%w: want %d options, got %d", apperror.ErrMalformedOptions, OptionCount, len(items))
	}

	set := &OptionSet{Options: make([]string, 0, OptionCount)}
	for i, item := range items {
		if item.Type != gjson.String {
			return nil, fmt.Errorf("%w: option %d is not a string", apperror.ErrMalformedOptions, i)
		}
		set.Options = append(set.Options, item.String())
	}

	gjson.GetBytes(data, "rightAnswers").ForEach(func(_, value gjson.Result) bool {
		if value.Type == gjson.String {
			set.RightAnswers = append(set.RightAnswers, value.String())
		}
		return true
	})

	if topic := gjson.GetBytes(data, "topic"); topic.Type == gjson.String {
		set.Topic = topic.String()
	}

	return set, nil
}

// Validate applies the same shape rules as ParseOptionSet to an in-memory set.
func (that *OptionSet) Validate() error {
	if that == nil {
		return fmt.Errorf("%w: empty record", apperror.ErrMalformedOptions)
	}

	if len(that.Options) != OptionCount {
		return fmt.Errorf("%w: want %d options, got %d", apperror.ErrMalformedOptions, OptionCount, len(that.Options))
	}

	return nil
}

// IDs lists the options in palette order.
func (that *OptionSet) IDs() []OptionID {
	ids := make([]OptionID, 0, len(that.Options))
	for i, text := range that.Options {
		ids = append(ids, OptionID{Index: i, Text: text})
	}

	return ids
}
