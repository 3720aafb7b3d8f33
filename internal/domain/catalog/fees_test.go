package catalog

import (
	"testing"

	"github.com/vtuboss/vtuboss-api/internal/domain/user"
)

func TestFeeForUnmappedRoleDefaultsToZero(t *testing.T) {
	fees := Fees{Customer: 50, Vendor: 25, Admin: 10}
	if got := fees.For(user.RoleSuperAdmin); got != 0 {
		t.Fatalf("expected 0 for unmapped role, got %v", got)
	}
	if got := fees.For(user.RoleCustomer); got != 50 {
		t.Fatalf("expected 50 for customer, got %v", got)
	}
}

func TestAdjustFeeIncreasePercentage(t *testing.T) {
	if got := AdjustFee(100, IncreasePercentage, 10); got != 110.00 {
		t.Fatalf("expected 110.00, got %v", got)
	}
}

func TestAdjustFeeDecreaseFixedClampsAtZero(t *testing.T) {
	if got := AdjustFee(30, DecreaseFixed, 100); got != 0 {
		t.Fatalf("expected clamp to 0, got %v", got)
	}
	// Clamping is idempotent: adjusting again stays at exactly 0
	if got := AdjustFee(0, DecreaseFixed, 100); got != 0 {
		t.Fatalf("expected 0 to stay 0, got %v", got)
	}
}

func TestAdjustFeeRoundsToTwoDecimals(t *testing.T) {
	if got := AdjustFee(33.33, IncreasePercentage, 10); got != 36.66 {
		t.Fatalf("expected 36.66, got %v", got)
	}
	if got := AdjustFee(0.1, IncreaseFixed, 0.2); got != 0.30 {
		t.Fatalf("expected exact 0.30, got %v", got)
	}
}

func TestAdjustVariationFeesRecursesIntoChildren(t *testing.T) {
	variations := []Variation{
		{
			ID: "net", Fees: Fees{Customer: 100},
			Children: []Variation{
				{ID: "denom-100", Fees: Fees{Customer: 10, Vendor: 5}},
			},
		},
	}

	AdjustVariationFees(variations, IncreasePercentage, 10)

	if variations[0].Fees.Customer != 110 {
		t.Fatalf("expected parent fee 110, got %v", variations[0].Fees.Customer)
	}
	child := variations[0].Children[0]
	if child.Fees.Customer != 11 || child.Fees.Vendor != 5.5 {
		t.Fatalf("expected child fees adjusted, got %+v", child.Fees)
	}
}

func TestFindVariationDescendsChildren(t *testing.T) {
	svc := &Service{
		Variations: []Variation{
			{ID: "mtn", Name: "MTN", Children: []Variation{
				{ID: "mtn-100", Name: "MTN ₦100", Price: 98},
			}},
		},
	}

	v := svc.FindVariation("mtn-100")
	if v == nil || v.Price != 98 {
		t.Fatalf("expected nested variation, got %+v", v)
	}
	if svc.FindVariation("absent") != nil {
		t.Fatal("expected nil for unknown variation id")
	}
}
