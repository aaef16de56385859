package benchmark

import (
	"bufio"
	"encoding/json"
	"io"
	"os"

	"github.com/edaniels/gobag/rosbag"
	"github.com/pkg/errors"
	goutils "go.viam.com/utils"

	"go.viam.com/rotation/spatialmath"
)

// DefaultIMUTopic is where sensor_msgs/Imu messages are usually published.
const DefaultIMUTopic = "/imu/data"

type stamp struct {
	Secs  int64
	Nsecs int64
}

func (s stamp) seconds() float64 {
	return float64(s.Secs) + float64(s.Nsecs)*1e-9
}

// imuMessage is the part of a sensor_msgs/Imu message, as gobag renders it to JSON, that a walk
// needs.
type imuMessage struct {
	Meta stamp
	Data struct {
		Header struct {
			Stamp stamp
		}
		Orientation struct {
			X float64
			Y float64
			Z float64
			W float64
		}
	}
}

// ReadBagOrientations returns the orientations published on topic in the rosbag at path, in
// recorded order, along with the mean time in seconds between them.
func ReadBagOrientations(path, topic string) ([]spatialmath.RotationVector, float64, error) {
	//nolint:gosec
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, errors.Wrap(err, "unable to open rosbag")
	}
	defer goutils.UncheckedErrorFunc(f.Close)

	rb := rosbag.NewRosBag()
	if err := rb.Read(f); err != nil {
		return nil, 0, errors.Wrapf(err, "unable to read rosbag %q", path)
	}
	if err := rb.ParseTopicsToJSON(
		"",
		func(int64) bool { return true },
		func(t string) bool { return t == topic },
		false,
	); err != nil {
		return nil, 0, errors.Wrap(err, "error while parsing bag to JSON")
	}

	msgs := rb.TopicsAsJSON[topic]
	if msgs == nil {
		return nil, 0, errors.Errorf("no messages for topic %s", topic)
	}
	return ParseIMUMessages(msgs)
}

// ParseIMUMessages decodes newline separated sensor_msgs/Imu JSON messages into four component
// rotation vectors. The returned interval is the mean spacing of the header stamps, or of the
// record times when the sensor left its stamps empty, and is 0 when there is no spacing to measure.
func ParseIMUMessages(r io.Reader) ([]spatialmath.RotationVector, float64, error) {
	var (
		vectors []spatialmath.RotationVector
		times   []float64
	)
	reader := bufio.NewReader(r)
	for {
		line, err := reader.ReadBytes('\n')
		if len(line) > 0 {
			var msg imuMessage
			if err := json.Unmarshal(line, &msg); err != nil {
				return nil, 0, errors.Wrapf(err, "message %d", len(vectors))
			}
			o := msg.Data.Orientation
			vectors = append(vectors, spatialmath.RotationVector{o.X, o.Y, o.Z, o.W})
			t := msg.Data.Header.Stamp.seconds()
			if t == 0 {
				t = msg.Meta.seconds()
			}
			times = append(times, t)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, 0, err
		}
	}

	if len(vectors) == 0 {
		return nil, 0, errors.New("no imu messages")
	}
	var interval float64
	if n := len(times); n > 1 && times[n-1] > times[0] {
		interval = (times[n-1] - times[0]) / float64(n-1)
	}
	return vectors, interval, nil
}
