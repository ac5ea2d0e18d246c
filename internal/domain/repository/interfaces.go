package repository

type Metrics interface {
	RecordPrediction(outcome string)
	RecordError(kind string)
	RecordLastPrice(price float64)
	RecordLatency(op string, seconds float64)
	RecordCacheLookup(hit bool)
}
