package domain

const (
	ShapeRound    = "ROUND"
	ShapePrincess = "PRINCESS"
	ShapeCushion  = "CUSHION"
	ShapeEmerald  = "EMERALD"
	ShapeOval     = "OVAL"
	ShapePear     = "PEAR"
	ShapeMarquise = "MARQUISE"
	ShapeRadiant  = "RADIANT"
	ShapeAsscher  = "ASSCHER"
	ShapeHeart    = "HEART"
)

var DiamondShapes = []string{
	ShapeRound, ShapePrincess, ShapeCushion, ShapeEmerald, ShapeOval,
	ShapePear, ShapeMarquise, ShapeRadiant, ShapeAsscher, ShapeHeart,
}

var DiamondColors = []string{"D", "E", "F", "G", "H", "I", "J", "K", "L", "M"}

var DiamondPurities = []string{"FL", "IF", "VVS1", "VVS2", "VS1", "VS2", "SI1", "SI2", "I1", "I2", "I3"}

const (
	DefaultDiamondShape  = ShapeAsscher
	DefaultDiamondColor  = "D"
	DefaultDiamondPurity = "IF"
)

// Assignment status of a packet going through a process.
const (
	StatusPending    = "PENDING"
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"
	StatusOnHold     = "ON_HOLD"
	StatusCancelled  = "CANCELLED"
)

var ProcessStatuses = []string{StatusPending, StatusInProgress, StatusCompleted, StatusOnHold, StatusCancelled}

const DefaultProcessStatus = StatusPending
