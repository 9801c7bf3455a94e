package domain

type UsageBucketView struct {
	ProductName string     `json:"productName"`
	Unit        string     `json:"unit"`
	Used        float64    `json:"used"`
	Remaining   float64    `json:"remaining"`
	OverUsage   bool       `json:"overUsage"`
	ChartData   [2]float64 `json:"chartData"`
	Message     string     `json:"message,omitempty"`
}

type UsageReport struct {
	SubscriptionID string            `json:"subscriptionId"`
	Buckets        []UsageBucketView `json:"buckets"`
}
