// Command chime-render renders one strike to a WAV file without opening an
// audio device. Useful for listening to what a given coordinate sounds like.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/lumenfield/chime"
)

func main() {
	var (
		x       = flag.Float64("x", 400, "strike x coordinate")
		y       = flag.Float64("y", 300, "strike y coordinate")
		width   = flag.Float64("width", 800, "surface width")
		height  = flag.Float64("height", 600, "surface height")
		rate    = flag.Int("rate", 48000, "sample rate in Hz")
		seconds = flag.Float64("seconds", 6, "render duration")
		out     = flag.String("o", "strike.wav", "output file")
	)
	flag.Parse()

	samples, err := chime.RenderStrike(*x, *y, *width, *height, *rate, *seconds)
	if err != nil {
		log.Fatal(err)
	}
	if err := os.WriteFile(*out, chime.EncodeWAV(samples, *rate, 2), 0o644); err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote %s (%.1fs at %d Hz)", *out, *seconds, *rate)
}
