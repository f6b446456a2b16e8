package protocol

import "time"

// NormalTimeout is the read deadline applied to every exchange outside the
// RECHARGING sub-state.
const NormalTimeout = 1 * time.Second

// RechargeTimeout is the read deadline applied while waiting for the
// FULL POWER response that must follow a RECHARGING notification.
const RechargeTimeout = 5 * time.Second

// CollisionLimit is the maximum number of collisions a session tolerates
// before it is closed silently.
const CollisionLimit = 20
