package checkout

import (
	"regexp"
	"strings"
)

// Indian mobile numbers: ten digits, first digit 6-9.
var mobileRegex = regexp.MustCompile(`^[6-9]\d{9}$`)

var pincodeRegex = regexp.MustCompile(`^\d{6}$`)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// CustomerDetails is the checkout form snapshot.
type CustomerDetails struct {
	Name    string
	Mobile  string
	Email   string
	Street  string
	City    string
	State   string
	Pincode string
}

// Validate returns one message per failing field, keyed by field name.
// An empty map means the details are good to submit to the gateway.
func (d CustomerDetails) Validate() map[string]string {
	errors := make(map[string]string)

	if strings.TrimSpace(d.Name) == "" {
		errors["name"] = "Please enter your full name"
	}
	if !ValidMobile(d.Mobile) {
		errors["mobile"] = "Please enter a valid 10-digit mobile number"
	}
	if !emailRegex.MatchString(strings.TrimSpace(d.Email)) {
		errors["email"] = "Please enter a valid email address"
	}
	if strings.TrimSpace(d.Street) == "" {
		errors["address"] = "Please enter your delivery address"
	}
	if strings.TrimSpace(d.City) == "" {
		errors["city"] = "Please enter your city"
	}
	if strings.TrimSpace(d.State) == "" {
		errors["state"] = "Please enter your state"
	}
	if !pincodeRegex.MatchString(strings.TrimSpace(d.Pincode)) {
		errors["pincode"] = "Please enter a valid 6-digit pincode"
	}

	return errors
}

// ValidMobile gates the payment requester: no gateway call happens for a
// number that fails this check.
func ValidMobile(mobile string) bool {
	return mobileRegex.MatchString(strings.TrimSpace(mobile))
}
