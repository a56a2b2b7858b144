package common

// DefaultFeeBps is the platform cut applied to jobs that do not set their own,
// in basis points (1500 = 15%).
const DefaultFeeBps = 1500

// SplitAmount divides an accepted amount between the worker and the platform.
// The fee is rounded half-up on integer cents so that
// workerEarnings + platformFee == amount always holds exactly.
func SplitAmount(amountCents int, feeBps int) (workerEarnings, platformFee int) {
	platformFee = (amountCents*feeBps + 5000) / 10000
	workerEarnings = amountCents - platformFee
	return workerEarnings, platformFee
}
