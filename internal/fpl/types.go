package fpl

// accountResponse is the JSON shape of GET /api/resources/account/{account}.
type accountResponse struct {
	Data accountData `json:"data"`
}

type accountData struct {
	PremiseNumber   string       `json:"premiseNumber"`
	MeterSerialNo   string       `json:"meterSerialNo"`
	CurrentBillDate string       `json:"currentBillDate"`
	NextBillDate    string       `json:"nextBillDate"`
	Programs        programsData `json:"programs"`
}

type programsData struct {
	Data []programEntry `json:"data"`
}

type programEntry struct {
	Name             string  `json:"name"`
	EnrollmentStatus *string `json:"enrollmentStatus"`
}

// headerResponse is the JSON shape of GET /api/resources/header. The double
// data nesting is how upstream actually sends it.
type headerResponse struct {
	Data struct {
		Accounts struct {
			Data struct {
				Data []headerAccount `json:"data"`
			} `json:"data"`
		} `json:"accounts"`
	} `json:"data"`
}

type headerAccount struct {
	AccountNumber  string `json:"accountNumber"`
	StatusCategory string `json:"statusCategory"`
}

type loginResponse struct {
	MessageCode string `json:"messageCode"`
}

// projectedBillResponse is the JSON shape of the projected-bill resource.
type projectedBillResponse struct {
	Data struct {
		BillToDate    float64 `json:"billToDate"`
		ProjectedBill float64 `json:"projectedBill"`
		DailyAvg      float64 `json:"dailyAvg"`
		AvgHighTemp   float64 `json:"avgHighTemp"`
	} `json:"data"`
}

// budgetDetailResponse is the JSON shape of the budget-billing premise
// details resource.
type budgetDetailResponse struct {
	Data struct {
		GraphData []budgetGraphEntry `json:"graphData"`
		DefAmt    float64            `json:"defAmt"`
	} `json:"data"`
}

type budgetGraphEntry struct {
	ActuallBillAmt float64 `json:"actuallBillAmt"`
}

// budgetGraphResponse is the JSON shape of the budget-billing graph resource.
type budgetGraphResponse struct {
	Data struct {
		EleAmt float64 `json:"eleAmt"`
		DefAmt float64 `json:"defAmt"`
	} `json:"data"`
}

// energyServiceResponse is the JSON shape of the energy service resource.
// The top-level data key can be entirely absent; the pointer records that.
type energyServiceResponse struct {
	Data *struct {
		DailyUsage *struct {
			Data []dailyUsageEntry `json:"data"`
		} `json:"DailyUsage"`
		CurrentUsage *currentUsageData `json:"CurrentUsage"`
	} `json:"data"`
}

type dailyUsageEntry struct {
	MissingDay             string   `json:"missingDay"`
	KwhUsed                *float64 `json:"kwhUsed"`
	BillingCharge          *float64 `json:"billingCharge"`
	AverageHighTemperature *float64 `json:"averageHighTemperature"`
	NetDeliveredKwh        *float64 `json:"netDeliveredKwh"`
	NetReceivedKwh         *float64 `json:"netReceivedKwh"`
	ReadTime               string   `json:"readTime"`
}

type currentUsageData struct {
	ProjectedKWH    float64  `json:"projectedKWH"`
	DailyAverageKWH float64  `json:"dailyAverageKWH"`
	BillToDateKWH   float64  `json:"billToDateKWH"`
	RecMtrReading   *float64 `json:"recMtrReading"`
	DelMtrReading   *float64 `json:"delMtrReading"`
	BillStartDate   string   `json:"billStartDate"`
}

// applianceUsageResponse is the JSON shape of the appliance usage resource.
type applianceUsageResponse struct {
	Data struct {
		Electric []ApplianceCategory `json:"electric"`
	} `json:"data"`
}

// ApplianceCategory is one appliance category's raw share of the bill.
type ApplianceCategory struct {
	Category         string  `json:"category"`
	PercentageDollar float64 `json:"percentageDollar"`
}

// balanceResponse is the JSON shape of the balance resource.
type balanceResponse struct {
	Data []balanceEntry `json:"data"`
}

type balanceEntry struct {
	Details string  `json:"details"`
	Amount  float64 `json:"amount"`
}
