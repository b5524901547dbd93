package request_models

type CompareRequest struct {
	CarIDs []string `json:"car_ids"`
}

type EstimateRequest struct {
	TradeInValue   int `json:"trade_in_value"`
	DownPayment    int `json:"down_payment"`
	LoanTermMonths int `json:"loan_term"`
}
