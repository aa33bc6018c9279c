package confirm_pending

import "github.com/m04kA/SMC-CarWash/internal/service/admin"

// ConfirmPendingResponse HTTP response model
type ConfirmPendingResponse struct {
	ShopID    string `json:"shopId"`
	Confirmed int    `json:"confirmed"`
	Failed    int    `json:"failed"`
}

func fromResult(shopID string, r *admin.ConfirmAllResult) *ConfirmPendingResponse {
	return &ConfirmPendingResponse{ShopID: shopID, Confirmed: r.Confirmed, Failed: r.Failed}
}
