package constants

import "time"

// DefaultHeroHeight is the hero height in pixels when no aspect ratio is set.
const DefaultHeroHeight = 320

// HeroMaxWidth caps the hero column, matching the drawer width on wide windows.
const HeroMaxWidth = 768

// ColorCacheSize bounds the number of extracted colors kept in memory (LRU).
const ColorCacheSize = 100

// ImageLoadTimeout bounds a single image download and decode.
const ImageLoadTimeout = 10 * time.Second

// MaxConcurrentDownloads limits parallel image downloads.
const MaxConcurrentDownloads = 6

// DefaultOrigin is the base URL relative image paths resolve against.
const DefaultOrigin = "https://images.unsplash.com"
