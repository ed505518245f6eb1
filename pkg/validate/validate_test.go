package validate_test

import (
	"testing"

	"github.com/shashiranjanraj/bazaar/pkg/validate"
)

type registerInput struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role"     validate:"required,in=buyer,seller"`
}

func TestValidInput(t *testing.T) {
	errs := validate.Struct(registerInput{
		Email:    "seller@example.com",
		Password: "secret123",
		Role:     "seller",
	})
	if validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestRequiredFails(t *testing.T) {
	errs := validate.Struct(registerInput{})
	if !validate.HasErrors(errs) {
		t.Fatal("expected required errors")
	}
	if _, ok := errs["email"]; !ok {
		t.Error("expected email to be required")
	}
	if _, ok := errs["password"]; !ok {
		t.Error("expected password to be required")
	}
}

func TestEmailRule(t *testing.T) {
	type in struct {
		Email string `json:"email" validate:"required,email"`
	}
	if errs := validate.Struct(in{Email: "not-an-email"}); !validate.HasErrors(errs) {
		t.Error("expected email validation error")
	}
	if errs := validate.Struct(in{Email: "valid@example.com"}); validate.HasErrors(errs) {
		t.Errorf("expected valid email to pass, got: %v", errs)
	}
}

func TestInRuleKeepsMultiValueParam(t *testing.T) {
	type in struct {
		Role string `json:"role" validate:"required,in=buyer,seller,max=50"`
	}
	if errs := validate.Struct(in{Role: "seller"}); validate.HasErrors(errs) {
		t.Errorf("expected seller to pass, got: %v", errs)
	}
	if errs := validate.Struct(in{Role: "admin"}); !validate.HasErrors(errs) {
		t.Error("expected admin to be rejected")
	}
}

func TestNumericBounds(t *testing.T) {
	type in struct {
		Grade int `json:"grade" validate:"required,gte=1,lte=5"`
	}
	if errs := validate.Struct(in{Grade: 6}); !validate.HasErrors(errs) {
		t.Error("expected grade 6 to fail")
	}
	if errs := validate.Struct(in{Grade: 3}); validate.HasErrors(errs) {
		t.Errorf("expected grade 3 to pass, got: %v", errs)
	}
}

func TestGtOnFloat(t *testing.T) {
	type in struct {
		Price float64 `json:"price" validate:"required,gt=0"`
	}
	if errs := validate.Struct(in{Price: -1}); !validate.HasErrors(errs) {
		t.Error("expected negative price to fail")
	}
	if errs := validate.Struct(in{Price: 9.99}); validate.HasErrors(errs) {
		t.Errorf("expected positive price to pass, got: %v", errs)
	}
}

func TestNullableSkipsWhenEmpty(t *testing.T) {
	type in struct {
		Image   string  `json:"image_url" validate:"nullable,url,max=200"`
		Comment *string `json:"comment"   validate:"nullable,min=2"`
	}
	if errs := validate.Struct(in{}); validate.HasErrors(errs) {
		t.Errorf("expected empty nullable fields to pass, got: %v", errs)
	}

	short := "x"
	errs := validate.Struct(in{Image: "not-a-url", Comment: &short})
	if _, ok := errs["image_url"]; !ok {
		t.Error("expected image_url error when set")
	}
	if _, ok := errs["comment"]; !ok {
		t.Error("expected comment min-length error when set")
	}
}
