package hydro

// Unit conversions between flow (cfs held for one hour) and storage (AF).
const (
	AFPerCFSHour = 3600.0 / 43560.0
	CFSPerAFHour = 1.0 / AFPerCFSHour
)

// Stage-storage curve: ABAY_AF = a*ft^2 + b*ft + c (fitted quadratic).
const (
	StorageACoef = 0.6311303
	StorageBCoef = -1403.8
	StorageCCoef = 780566.0
)

// ABAY reservoir limits.
const (
	MinElevationFt = 1168.0
	// FloatBufferFt is subtracted from the float ceiling to leave headroom
	// before the bypass gates take over.
	FloatBufferFt = 1.0
)

// OXPH generator limits and conversions. Flow is affine in power:
// cfs = factor*MW + offset.
const (
	OXPHMinMW         = 0.8
	OXPHMaxMW         = 5.8
	OXPHRampMWPerMin  = 0.042
	OXPHRampMWPerHour = OXPHRampMWPerMin * 60.0
	OXPHFlowFactor    = 163.73
	OXPHFlowOffset    = 83.0
)

// MFRA/MF12 companion-plant conversions. MF12 flow is quadratic in power.
const (
	MF12ShareOfMFRA    = 0.59
	MF12FlowQuadCoef   = 0.00943
	MF12FlowLinCoef    = 5.6653
	MF12FlowOffset     = 18.54
	SideWaterMaxCFS    = 86.0
	RegulatedCapCFS    = 886.0
	MFRAMaxMWGenMode   = 210.0
	MFRAMaxMWSpillMode = 210.0
)

// OXPH head-loss line: the maximum generation supportable at a given ABAY
// elevation is slope*ft + intercept.
const (
	HeadLossSlope     = 0.0912
	HeadLossIntercept = -101.42
)
