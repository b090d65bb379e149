// Package ffprobe shells out to ffprobe for container inspection of
// uploaded media: stream layout, duration, declared frame counts.
package ffprobe
