package pagination

// PageMaxSize is the largest page the upstream search endpoint will serve.
// Larger requests are clamped, never rejected.
const PageMaxSize = 50
