package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validDetails() CustomerDetails {
	return CustomerDetails{
		Name:    "Asha Verma",
		Mobile:  "9876543210",
		Email:   "asha@example.com",
		Street:  "12 MG Road",
		City:    "Pune",
		State:   "Maharashtra",
		Pincode: "411001",
	}
}

func TestValidateAccepts(t *testing.T) {
	assert.Empty(t, validDetails().Validate())
}

func TestValidMobile(t *testing.T) {
	valid := []string{"9876543210", "6000000000", "7123456789", "8999999999", " 9876543210 "}
	for _, m := range valid {
		assert.True(t, ValidMobile(m), "mobile %q", m)
	}

	invalid := []string{
		"12345",       // too short
		"1234567890",  // leading digit out of range
		"5876543210",  // leading digit out of range
		"98765432101", // too long
		"98765abc10",  // non-digit
		"",
	}
	for _, m := range invalid {
		assert.False(t, ValidMobile(m), "mobile %q", m)
	}
}

func TestValidatePerFieldMessages(t *testing.T) {
	d := CustomerDetails{Mobile: "12345", Pincode: "4110"}
	errs := d.Validate()

	assert.Equal(t, "Please enter your full name", errs["name"])
	assert.Equal(t, "Please enter a valid 10-digit mobile number", errs["mobile"])
	assert.Equal(t, "Please enter a valid email address", errs["email"])
	assert.Equal(t, "Please enter your delivery address", errs["address"])
	assert.Equal(t, "Please enter your city", errs["city"])
	assert.Equal(t, "Please enter your state", errs["state"])
	assert.Equal(t, "Please enter a valid 6-digit pincode", errs["pincode"])
}

func TestValidatePincode(t *testing.T) {
	d := validDetails()

	d.Pincode = "411001"
	assert.NotContains(t, d.Validate(), "pincode")

	for _, bad := range []string{"41100", "4110011", "41100a", ""} {
		d.Pincode = bad
		assert.Contains(t, d.Validate(), "pincode", "pincode %q", bad)
	}
}

func TestValidateEmail(t *testing.T) {
	d := validDetails()

	for _, ok := range []string{"a@b.co", "user.name+tag@example.org"} {
		d.Email = ok
		assert.NotContains(t, d.Validate(), "email", "email %q", ok)
	}
	for _, bad := range []string{"missing-at.example.com", "user@", "@host.com", ""} {
		d.Email = bad
		assert.Contains(t, d.Validate(), "email", "email %q", bad)
	}
}
