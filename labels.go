package promagg

import (
	"sort"
	"strings"
)

// Labels are the key/value tags attached to an Observation. Order is irrelevant.
type Labels map[string]string

// Tags represents a list of tags in "key:value" form, as accepted on the command line.
// A tag without a column is treated as the value of the "unknown" key.
type Tags []string

const unset = "unknown"

// ParseLabels converts tags into Labels. Later tags with the same key win.
func ParseLabels(tags Tags) Labels {
	labels := make(Labels, len(tags))
	for _, tag := range tags {
		key, value := parseTag(tag)
		labels[key] = value
	}
	return labels
}

// Copy returns a copy of the Labels.
func (l Labels) Copy() Labels {
	if l == nil {
		return nil
	}
	labelsCopy := make(Labels, len(l))
	for k, v := range l {
		labelsCopy[k] = v
	}
	return labelsCopy
}

// Tags converts the labels back to a sorted list of "key:value" tags.
func (l Labels) Tags() Tags {
	tags := make(Tags, 0, len(l))
	for k, v := range l {
		tags = append(tags, k+":"+v)
	}
	sort.Strings(tags)
	return tags
}

// String returns a comma-separated string representation of the labels, sorted by key.
func (l Labels) String() string {
	return strings.Join(l.Tags(), ",")
}

func parseTag(tag string) (string, string) {
	tokens := strings.SplitN(tag, ":", 2)
	if len(tokens) == 1 {
		return unset, tokens[0]
	}
	return tokens[0], tokens[1]
}
