package models

// BankDetails is the merchant payout account. There is exactly one per
// deployment; the zero value is the unlinked default.
type BankDetails struct {
	HolderName    string `json:"holderName"`
	AccountNumber string `json:"accountNumber"`
	BankName      string `json:"bankName"`
	IFSC          string `json:"ifsc"`
	UPIID         string `json:"upiId"`
	IsLinked      bool   `json:"isLinked"`
}
