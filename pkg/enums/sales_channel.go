package enums

import "fmt"

// SalesChannel is the sales context that decides which cost formula applies.
type SalesChannel string

const (
	SalesChannelOffline  SalesChannel = "offline"
	SalesChannelOnline   SalesChannel = "online"
	SalesChannelCatering SalesChannel = "catering"
)

var validSalesChannels = []SalesChannel{
	SalesChannelOffline,
	SalesChannelOnline,
	SalesChannelCatering,
}

// String implements fmt.Stringer.
func (c SalesChannel) String() string {
	return string(c)
}

// IsValid reports whether the value is a known SalesChannel.
func (c SalesChannel) IsValid() bool {
	for _, candidate := range validSalesChannels {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseSalesChannel converts raw input into a SalesChannel.
func ParseSalesChannel(value string) (SalesChannel, error) {
	for _, candidate := range validSalesChannels {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid sales channel %q", value)
}
