package clients

// Client is reference data: the order workflow reads it but never writes it.
type Client struct {
	ID           int64  `json:"id"`
	CustomerName string `json:"customerName"`
	Address1     string `json:"address1"`
	Address2     string `json:"address2"`
	Address3     string `json:"address3"`
	Suburb       string `json:"suburb"`
	State        string `json:"state"`
	PostCode     string `json:"postCode"`
}
