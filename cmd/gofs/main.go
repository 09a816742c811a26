// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package main

import (
	"bufio"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/navwar/gofs/pkg/fileutil"
	"github.com/navwar/gofs/pkg/fpath"
	"github.com/navwar/gofs/pkg/fs"
	"github.com/navwar/gofs/pkg/lfs"
	"github.com/navwar/gofs/pkg/log"
	"github.com/navwar/gofs/pkg/predicate"
	"github.com/navwar/gofs/pkg/s3fs"
	"github.com/navwar/gofs/pkg/ts"
)

const (
	GoFSVersion = "0.0.1"
)

// Root Flags
const (
	flagRoot   = "root"
	flagConfig = "config"
)

// Root Defaults
const (
	DefaultRoot = "file:///"
)

// AWS Flags
const (
	// Profile
	flagAWSProfile       = "aws-profile"
	flagAWSDefaultRegion = "aws-default-region"
	flagAWSRegion        = "aws-region"
	// Credentials
	flagAWSAccessKeyID     = "aws-access-key-id"
	flagAWSSecretAccessKey = "aws-secret-access-key"
	flagAWSSessionToken    = "aws-session-token"
	// Client
	flagAWSRetryMaxAttempts = "aws-retry-max-attempts"
	// TLS
	flagAWSInsecureSkipVerify = "aws-insecure-skip-verify"
	// Miscellaneous
	flagAWSS3Endpoint     = "aws-s3-endpoint"
	flagAWSS3UsePathStyle = "aws-s3-use-path-style"
	flagAWSACL            = "aws-acl"
	flagBucketKeyEnabled  = "aws-bucket-key-enabled"
	flagPartSize          = "part-size"
)

// AWS Defaults
const (
	DefaultPartSize = 1_048_576 * 100 // 100 MiB
)

// Debug Flag
const (
	flagDebug = "debug"
)

// List Flags
const (
	flagAll                   = "all"
	flagLong                  = "long"
	flagFormat                = "format"
	flagTimeLayout            = "time-layout"
	flagTimeZone              = "time-zone"
	flagHumanReadableFileSize = "human-readable-file-size"
)

// List Defaults
const (
	DefaultFormat = "text"
)

// Find Flags
const (
	flagType          = "type"
	flagName          = "name"
	flagPath          = "path"
	flagRegex         = "regex"
	flagExtension     = "ext"
	flagSize          = "size"
	flagNewer         = "newer"
	flagOlder         = "older"
	flagNewerThanDate = "newer-than-date"
	flagOlderThanDate = "older-than-date"
	flagPerm          = "perm"
	flagUser          = "user"
	flagGroup         = "group"
	flagMimeType      = "mime"
	flagNot           = "not"
)

// File Operation Flags
const (
	flagParents     = "parents"
	flagMode        = "mode"
	flagNoCreate    = "no-create"
	flagDate        = "date"
	flagRecursive   = "recursive"
	flagInteractive = "interactive"
	flagForce       = "force"
	flagPreserve    = "preserve"
	flagSearchPath  = "search-path"
	flagThreads     = "threads"
)

// Log Flags
const (
	flagLogPath            = "log-path"
	flagLogPerm            = "log-perm"
	flagLogClientSigning   = "log-client-signing"
	flagLogClientRequests  = "log-client-requests"
	flagLogClientResponses = "log-client-responses"
	flagLogClientRetries   = "log-client-retries"
)

var awsFlags = []string{
	flagAWSProfile,
	flagAWSDefaultRegion,
	flagAWSRegion,
	flagAWSAccessKeyID,
	flagAWSSecretAccessKey,
	flagAWSSessionToken,
}

var kinds = map[string]fs.Kind{
	"f": fs.KindFile,
	"d": fs.KindDir,
	"l": fs.KindSymlink,
	"p": fs.KindFifo,
	"s": fs.KindSocket,
	"b": fs.KindBlockDevice,
	"c": fs.KindCharDevice,
}

func initRootFlags(flag *pflag.FlagSet) {
	flag.String(flagRoot, DefaultRoot, "the root of the file system as a URI.  Use file:///path for local directories or s3://bucket/prefix for S3.")
	flag.String(flagConfig, "", "path to a configuration file")
}

// InitAWSFlags initializes the AWS flags.
func initAWSFlags(flag *pflag.FlagSet) {
	// Profile
	flag.String(flagAWSProfile, "default", "AWS Profile")
	flag.String(flagAWSDefaultRegion, "", "AWS Default Region")
	flag.String(flagAWSRegion, "", "AWS Region (overrides default region)")
	// Credentials
	flag.String(flagAWSAccessKeyID, "", "AWS Access Key ID")
	flag.String(flagAWSSecretAccessKey, "", "AWS Secret Access Key")
	flag.String(flagAWSSessionToken, "", "AWS Session Token")
	// Client
	flag.Int(flagAWSRetryMaxAttempts, 5, "the maximum number attempts an AWS API client will call an operation that fails with a retryable error.")
	// TLS
	flag.Bool(flagAWSInsecureSkipVerify, false, "Skip verification of AWS TLS certificate")
	// Misceallenous
	flag.String(flagAWSS3Endpoint, "", "AWS S3 Endpoint URL")
	flag.Bool(flagAWSS3UsePathStyle, false, "Use path-style addressing (default is to use virtual-host-style addressing)")
	flag.String(flagAWSACL, "", "canned ACL applied to objects written to S3, e.g., bucket-owner-full-control")
	flag.Bool(flagBucketKeyEnabled, false, "bucket key enabled")
	flag.Int(flagPartSize, DefaultPartSize, fmt.Sprintf("size of parts in bytes when writing to S3 (minimum %d)", s3fs.MinimumPartSize))
}

func initDebugFlags(flag *pflag.FlagSet) {
	flag.BoolP(flagDebug, "d", false, "print debug messages")
}

func initTimeFlags(flag *pflag.FlagSet) {
	flag.StringP(flagTimeLayout, "t", "Default", "the layout to use for file timestamps.  Use go layout format, or the name of a layout.  Use gofs layouts to show all named layouts.")
	flag.StringP(flagTimeZone, "z", "Local", "the timezone to use for file timestamps")
}

func initListFlags(flag *pflag.FlagSet) {
	flag.BoolP(flagAll, "a", false, "Include directory entries whose names begin with a dot (‘.’).")
	flag.BoolP(flagLong, "l", false, "list kind, mode, size, and modification time of each entry")
	flag.StringP(flagFormat, "f", DefaultFormat, "output format.  Either jsonl or text.")
	flag.Bool(flagHumanReadableFileSize, false, "display file sizes in human-readable format")
	initTimeFlags(flag)
}

func initFindFlags(flag *pflag.FlagSet) {
	flag.String(flagType, "", "file type: f (file), d (directory), l (symbolic link), p (named pipe), s (socket), b (block device), or c (character device)")
	flag.String(flagName, "", "pattern matched against the last component of the path")
	flag.String(flagPath, "", "pattern matched against the whole path")
	flag.Bool(flagRegex, false, "interpret name and path patterns as regular expressions instead of globs")
	flag.String(flagExtension, "", "file extension, with or without the leading dot")
	flag.String(flagSize, "", "file size in bytes, with an optional K, M, or G suffix.  Prefix with + for bigger than or - for smaller than.")
	flag.String(flagNewer, "", "modified after the given file")
	flag.String(flagOlder, "", "modified before the given file")
	flag.String(flagNewerThanDate, "", "modified after the given date or duration relative to now, e.g., -24h")
	flag.String(flagOlderThanDate, "", "modified before the given date or duration relative to now, e.g., -24h")
	flag.String(flagPerm, "", "all of the given permission bits are set as unix file mode, e.g., 0111")
	flag.Bool(flagUser, false, "owned by the effective user")
	flag.Bool(flagGroup, false, "owned by the effective group")
	flag.String(flagMimeType, "", "regular file with the given mime type, e.g., text/plain")
	flag.Bool(flagNot, false, "negate the combined test")
	initTimeFlags(flag)
}

func initLogFlags(flag *pflag.FlagSet) {
	flag.String(flagLogPath, "-", "path to the log output.  Defaults to the operating system's stdout device.")
	flag.String(flagLogPerm, "0600", "file permissions for log output file as unix file mode.")
	flag.Bool(flagLogClientSigning, false, "log AWS client signature requests")
	flag.Bool(flagLogClientRequests, false, "log AWS client requests")
	flag.Bool(flagLogClientResponses, false, "log AWS client responses")
	flag.Bool(flagLogClientRetries, false, "log AWS client retries")
}

func initCommonFlags(flag *pflag.FlagSet) {
	initDebugFlags(flag)
	initRootFlags(flag)
	initAWSFlags(flag)
	initLogFlags(flag)
}

func initViper(cmd *cobra.Command) (*viper.Viper, error) {
	v := viper.New()
	err := v.BindPFlags(cmd.Flags())
	if err != nil {
		return v, errors.Errorf("error binding flag set to viper: %w", err)
	}
	v.SetEnvPrefix("gofs")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv() // set environment variables to overwrite config
	// AWS flags also read the standard AWS environment variables, e.g., AWS_REGION.
	for _, name := range awsFlags {
		if cmd.Flags().Lookup(name) != nil {
			env := strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
			if err := v.BindEnv(name, "GOFS_"+env, env); err != nil {
				return v, errors.Errorf("error binding environment variable %q to viper: %w", env, err)
			}
		}
	}
	if configPath := v.GetString(flagConfig); len(configPath) > 0 {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return v, errors.Errorf("error reading config file %q: %w", configPath, err)
		}
	}
	return v, nil
}

func checkRootConfig(v *viper.Viper) error {
	root := v.GetString(flagRoot)
	if len(root) == 0 {
		return errors.New("root is missing")
	}
	if strings.HasPrefix(root, "s3://") {
		if bucket, _, _ := strings.Cut(root[len("s3://"):], "/"); len(bucket) == 0 {
			return errors.Errorf("bucket is missing from root %q", root)
		}
		return nil
	}
	if strings.Contains(root, "://") && !strings.HasPrefix(root, "file://") {
		return errors.Errorf("unsupported scheme for root %q", root)
	}
	return nil
}

func checkAWSConfig(v *viper.Viper) error {
	if retryMaxAttempts := v.GetInt(flagAWSRetryMaxAttempts); retryMaxAttempts < 0 {
		return errors.Errorf("%q value %d is invalid, expecting value greater than or equal to 0", flagAWSRetryMaxAttempts, retryMaxAttempts)
	}
	if partSize := v.GetInt(flagPartSize); partSize < s3fs.MinimumPartSize {
		return errors.Errorf("part size %d is less than the minimum part size %d", partSize, s3fs.MinimumPartSize)
	}
	return nil
}

func checkLogConfig(v *viper.Viper) error {
	logPath := v.GetString(flagLogPath)
	if len(logPath) == 0 {
		return errors.New("log path is missing")
	}
	logPerm := v.GetString(flagLogPerm)
	if len(logPerm) == 0 {
		return errors.New("log perm is missing")
	}
	_, err := strconv.ParseUint(logPerm, 8, 32)
	if err != nil {
		return errors.Errorf("invalid format for log perm: %s", logPerm)
	}
	return nil
}

func checkCommonConfig(v *viper.Viper) error {
	if err := checkRootConfig(v); err != nil {
		return errors.Errorf("error with root configuration: %w", err)
	}
	if err := checkAWSConfig(v); err != nil {
		return errors.Errorf("error with AWS configuration: %w", err)
	}
	if err := checkLogConfig(v); err != nil {
		return errors.Errorf("error with log configuration: %w", err)
	}
	return nil
}

func checkListConfig(v *viper.Viper, args []string) error {
	if format := v.GetString(flagFormat); format != "text" && format != "jsonl" {
		return errors.Errorf("unknown format %q, expecting text or jsonl", format)
	}
	return checkCommonConfig(v)
}

func checkFindConfig(v *viper.Viper, args []string) error {
	if t := v.GetString(flagType); len(t) > 0 {
		if _, ok := kinds[t]; !ok {
			return errors.Errorf("unknown file type %q", t)
		}
	}
	if perm := v.GetString(flagPerm); len(perm) > 0 {
		if _, err := strconv.ParseUint(perm, 8, 32); err != nil {
			return errors.Errorf("invalid format for perm: %s", perm)
		}
	}
	if size := v.GetString(flagSize); len(size) > 0 {
		if _, _, err := parseSize(size); err != nil {
			return err
		}
	}
	return checkCommonConfig(v)
}

func checkPathsConfig(v *viper.Viper, args []string) error {
	if len(args) == 0 {
		return errors.New("expecting at least 1 positional argument, but found 0 arguments")
	}
	return checkCommonConfig(v)
}

func checkTransferConfig(v *viper.Viper, args []string) error {
	if len(args) != 2 {
		return errors.Errorf("expecting 2 positional arguments for source and destination, but found %d arguments", len(args))
	}
	return checkCommonConfig(v)
}

func checkWhichConfig(v *viper.Viper, args []string) error {
	if threads := v.GetInt(flagThreads); threads == 0 {
		return errors.New("threads cannot be zero")
	}
	return checkPathsConfig(v, args)
}

type InitS3ClientInput struct {
	Profile string
	Region  string
	// AWS Client
	Endpoint           string
	InsecureSkipVerify bool
	RetryMaxAttempts   int
	UsePathStyle       bool
	// AWS Credentials
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
	// Client Log Mode
	Logger             *log.SimpleLogger
	LogClientSigning   bool
	LogClientRetries   bool
	LogClientRequests  bool
	LogClientResponses bool
}

func InitS3Client(ctx context.Context, input *InitS3ClientInput) *s3.Client {
	clientLogMode := aws.ClientLogMode(0)
	if input.LogClientSigning {
		clientLogMode |= aws.LogSigning
	}
	if input.LogClientRetries {
		clientLogMode |= aws.LogRetries
	}
	if input.LogClientRequests {
		clientLogMode |= aws.LogRequest
	}
	if input.LogClientResponses {
		clientLogMode |= aws.LogResponse
	}

	c := aws.Config{
		ClientLogMode:    clientLogMode,
		RetryMaxAttempts: input.RetryMaxAttempts,
		Region:           input.Region,
		Logger:           log.NewClientLogger(input.Logger),
	}

	if len(input.AccessKeyID) > 0 && len(input.SecretAccessKey) > 0 {
		c.Credentials = credentials.NewStaticCredentialsProvider(
			input.AccessKeyID,
			input.SecretAccessKey,
			input.SessionToken)
	} else {
		sharedConfig, err := config.LoadSharedConfigProfile(ctx, input.Profile)
		if err == nil {
			c.Credentials = credentials.NewStaticCredentialsProvider(
				sharedConfig.Credentials.AccessKeyID,
				sharedConfig.Credentials.SecretAccessKey,
				sharedConfig.Credentials.SessionToken)
		}
	}

	if input.InsecureSkipVerify {
		c.HTTPClient = &http.Client{
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{
					InsecureSkipVerify: true,
				},
			},
		}
	}

	client := s3.NewFromConfig(c, func(o *s3.Options) {
		o.UsePathStyle = input.UsePathStyle
		if len(input.Endpoint) > 0 {
			o.BaseEndpoint = aws.String(input.Endpoint)
		}
	})

	return client
}

type InitFileSystemInput struct {
	Root          string
	ReadOnly      bool
	Profile       string
	DefaultRegion string
	// S3
	ACL              string
	BucketKeyEnabled bool
	PartSize         int
	// AWS Client
	Endpoint           string
	InsecureSkipVerify bool
	RetryMaxAttempts   int
	UsePathStyle       bool
	// AWS Credentials
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
	// Client Log Mode
	Logger             *log.SimpleLogger
	LogClientSigning   bool
	LogClientRetries   bool
	LogClientRequests  bool
	LogClientResponses bool
}

func InitFileSystem(ctx context.Context, input *InitFileSystemInput) fs.FileSystem {

	if strings.HasPrefix(input.Root, "s3://") {
		bucket, prefix, _ := strings.Cut(input.Root[len("s3://"):], "/")

		clientInput := &InitS3ClientInput{
			Profile: input.Profile,
			Region:  input.DefaultRegion,
			// AWS Client
			Endpoint:           input.Endpoint,
			InsecureSkipVerify: input.InsecureSkipVerify,
			RetryMaxAttempts:   input.RetryMaxAttempts,
			UsePathStyle:       input.UsePathStyle,
			// AWS Credentials
			AccessKeyID:     input.AccessKeyID,
			SecretAccessKey: input.SecretAccessKey,
			SessionToken:    input.SessionToken,
			// Client Mode
			Logger:             input.Logger,
			LogClientSigning:   input.LogClientSigning,
			LogClientRetries:   input.LogClientRetries,
			LogClientRequests:  input.LogClientRequests,
			LogClientResponses: input.LogClientResponses,
		}

		client := InitS3Client(ctx, clientInput)

		//
		// Get Client for the region of the bucket
		//

		getBucketLocationOutput, err := client.GetBucketLocation(ctx, &s3.GetBucketLocationInput{
			Bucket: aws.String(bucket),
		})
		if err == nil {
			bucketRegion := string(getBucketLocationOutput.LocationConstraint)
			if len(bucketRegion) == 0 {
				bucketRegion = "us-east-1"
			}
			if bucketRegion != input.DefaultRegion {
				clientInput.Region = bucketRegion
				client = InitS3Client(ctx, clientInput)
			}
		}
		// If GetBucketLocation is not allowed, assume that the default region is the region containing the bucket

		return s3fs.NewS3FileSystem(&s3fs.NewS3FileSystemInput{
			ACL:              types.ObjectCannedACL(input.ACL),
			Bucket:           bucket,
			BucketKeyEnabled: input.BucketKeyEnabled,
			Client:           client,
			PartSize:         input.PartSize,
			Prefix:           prefix,
		})
	}

	root := input.Root
	if strings.HasPrefix(root, "file://") {
		root = root[len("file://"):]
	}

	if input.ReadOnly {
		return lfs.NewReadOnlyLocalFileSystem(root)
	}

	return lfs.NewLocalFileSystem(root)
}

func initLogger(path string, perm string) (*log.SimpleLogger, error) {

	if path == os.DevNull {
		return log.NewSimpleLogger(io.Discard), nil
	}

	if path == "-" {
		return log.NewSimpleLogger(os.Stdout), nil
	}

	fileMode := os.FileMode(0600)

	if len(perm) > 0 {
		fm, err := strconv.ParseUint(perm, 8, 32)
		if err != nil {
			return nil, errors.Errorf("error parsing file permissions for log file from %q", perm)
		}
		fileMode = os.FileMode(fm)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, fileMode)
	if err != nil {
		return nil, errors.Errorf("error opening log file %q: %w", path, err)
	}

	return log.NewSimpleLogger(f), nil
}

func initRegion(ctx context.Context, v *viper.Viper, profile string) string {
	region := v.GetString(flagAWSRegion)
	if len(region) == 0 {
		if defaultRegion := v.GetString(flagAWSDefaultRegion); len(defaultRegion) > 0 {
			region = defaultRegion
		}
	}
	// if neither region nor default region is specified
	if len(region) == 0 {
		sharedConfig, loadSharedConfigProfileError := config.LoadSharedConfigProfile(ctx, profile)
		if loadSharedConfigProfileError == nil {
			region = sharedConfig.Region
		}
	}
	return region
}

// initGetwd returns the working directory of the process for a local file system rooted at "/".
// Every other file system starts at its root.
func initGetwd(fileSystem fs.FileSystem) func() (string, error) {
	if fileSystem.Root() == "/" {
		return os.Getwd
	}
	return func() (string, error) {
		return "/", nil
	}
}

type InitFileUtilInput struct {
	Viper    *viper.Viper
	Logger   *log.SimpleLogger
	Matcher  predicate.Matcher
	ReadOnly bool
}

func InitFileUtil(ctx context.Context, input *InitFileUtilInput) *fileutil.FileUtil {
	v := input.Viper

	debug := v.GetBool(flagDebug)

	root := v.GetString(flagRoot)

	profile := v.GetString(flagAWSProfile)
	if len(profile) == 0 {
		profile = "default"
	}

	region := ""
	if strings.HasPrefix(root, "s3://") {
		region = initRegion(ctx, v, profile)
	}

	// create file system
	if debug {
		fields := map[string]interface{}{
			"root": root,
		}
		if e := v.GetString(flagAWSS3Endpoint); len(e) > 0 {
			fields["endpoint"] = e
		}
		if len(region) > 0 {
			fields["region"] = region
		}
		_ = input.Logger.Log("Creating filesystem", fields)
	}

	fileSystem := InitFileSystem(ctx, &InitFileSystemInput{
		Root:          root,
		ReadOnly:      input.ReadOnly,
		Profile:       profile,
		DefaultRegion: region,
		// S3
		ACL:              v.GetString(flagAWSACL),
		BucketKeyEnabled: v.GetBool(flagBucketKeyEnabled),
		PartSize:         v.GetInt(flagPartSize),
		// AWS Client
		Endpoint:           v.GetString(flagAWSS3Endpoint),
		InsecureSkipVerify: v.GetBool(flagAWSInsecureSkipVerify),
		UsePathStyle:       v.GetBool(flagAWSS3UsePathStyle),
		RetryMaxAttempts:   v.GetInt(flagAWSRetryMaxAttempts),
		// AWS Credentials
		AccessKeyID:     v.GetString(flagAWSAccessKeyID),
		SecretAccessKey: v.GetString(flagAWSSecretAccessKey),
		SessionToken:    v.GetString(flagAWSSessionToken),
		// Client Mode
		Logger:             input.Logger,
		LogClientSigning:   v.GetBool(flagLogClientSigning),
		LogClientRetries:   v.GetBool(flagLogClientRetries),
		LogClientRequests:  v.GetBool(flagLogClientRequests),
		LogClientResponses: v.GetBool(flagLogClientResponses),
	})

	var logger fs.Logger
	if debug {
		logger = input.Logger
	}

	return fileutil.NewFileUtil(&fileutil.NewFileUtilInput{
		FileSystem: fileSystem,
		Getwd:      initGetwd(fileSystem),
		GID:        os.Getegid(),
		Logger:     logger,
		Matcher:    input.Matcher,
		UID:        os.Geteuid(),
	})
}

// initCommand binds the flags, checks the configuration, and opens the logger.
func initCommand(cmd *cobra.Command, args []string, check func(v *viper.Viper, args []string) error) (*viper.Viper, *log.SimpleLogger, error) {
	v, err := initViper(cmd)
	if err != nil {
		return nil, nil, errors.Errorf("error initializing viper: %w", err)
	}

	if errConfig := check(v, args); errConfig != nil {
		return nil, nil, errConfig
	}

	logger, err := initLogger(v.GetString(flagLogPath), v.GetString(flagLogPerm))
	if err != nil {
		return nil, nil, errors.Errorf("error initializing logger: %w", err)
	}

	return v, logger, nil
}

var stdin = bufio.NewReader(os.Stdin)

// ConfirmPrompt is used to ask the user for confirmation before a path is changed.
var ConfirmPrompt = func(prompt string) (bool, error) {
	fmt.Fprint(os.Stderr, prompt)
	s, err := stdin.ReadString('\n')
	if err != nil {
		return false, err
	}
	s = strings.TrimSpace(strings.ToLower(s))
	return s == "y" || s == "yes", nil
}

func initInteractive(v *viper.Viper, action string) fs.Interactive {
	if !v.GetBool(flagInteractive) {
		return fs.Force
	}
	return fs.AskFunc(func(path string) bool {
		ok, err := ConfirmPrompt(fmt.Sprintf("%s %q? [y/N]: ", action, path))
		return err == nil && ok
	})
}

// parseSize parses a size such as +10K into a comparison (-1, 0, or 1) and a number of bytes.
func parseSize(value string) (int, int64, error) {
	cmp := 0
	str := value
	if strings.HasPrefix(str, "+") {
		cmp = 1
		str = str[1:]
	} else if strings.HasPrefix(str, "-") {
		cmp = -1
		str = str[1:]
	}
	multiplier := int64(1)
	if len(str) > 0 {
		switch str[len(str)-1] {
		case 'k', 'K':
			multiplier = 1 << 10
		case 'm', 'M':
			multiplier = 1 << 20
		case 'g', 'G':
			multiplier = 1 << 30
		}
		if multiplier > 1 {
			str = str[:len(str)-1]
		}
	}
	size, err := strconv.ParseInt(str, 10, 64)
	if err != nil || size < 0 {
		return 0, 0, errors.Errorf("invalid format for size: %s", value)
	}
	return cmp, size * multiplier, nil
}

func initFindTest(ctx context.Context, v *viper.Viper, fu *fileutil.FileUtil) (predicate.Test, error) {
	tests := []predicate.Test{}

	if t := v.GetString(flagType); len(t) > 0 {
		tests = append(tests, predicate.IsKind(kinds[t]))
	}

	if name := v.GetString(flagName); len(name) > 0 {
		tests = append(tests, predicate.NameMatch(name))
	}

	if p := v.GetString(flagPath); len(p) > 0 {
		tests = append(tests, predicate.Match(p))
	}

	if ext := v.GetString(flagExtension); len(ext) > 0 {
		tests = append(tests, predicate.HasExtension(ext))
	}

	if size := v.GetString(flagSize); len(size) > 0 {
		cmp, n, err := parseSize(size)
		if err != nil {
			return predicate.Test{}, err
		}
		switch cmp {
		case 1:
			tests = append(tests, predicate.SizeBiggerThan(n))
		case -1:
			tests = append(tests, predicate.SizeSmallerThan(n))
		default:
			tests = append(tests, predicate.SizeEqualTo(n))
		}
	}

	if newer := v.GetString(flagNewer); len(newer) > 0 {
		fi, err := fu.Stat(ctx, newer)
		if err != nil {
			return predicate.Test{}, errors.Errorf("error stating reference file %q: %w", newer, err)
		}
		tests = append(tests, predicate.IsNewerThanDate(fi.ModTime()))
	}

	if older := v.GetString(flagOlder); len(older) > 0 {
		fi, err := fu.Stat(ctx, older)
		if err != nil {
			return predicate.Test{}, errors.Errorf("error stating reference file %q: %w", older, err)
		}
		tests = append(tests, predicate.IsOlderThanDate(fi.ModTime()))
	}

	if newerThanDate, olderThanDate := v.GetString(flagNewerThanDate), v.GetString(flagOlderThanDate); len(newerThanDate) > 0 || len(olderThanDate) > 0 {
		location, err := ts.ParseLocation(v.GetString(flagTimeZone))
		if err != nil {
			return predicate.Test{}, errors.Errorf("error parsing time zone location %q: %w", v.GetString(flagTimeZone), err)
		}
		now := time.Now()
		if len(newerThanDate) > 0 {
			date, err := ts.ParseDate(newerThanDate, now, location)
			if err != nil {
				return predicate.Test{}, err
			}
			tests = append(tests, predicate.IsNewerThanDate(date))
		}
		if len(olderThanDate) > 0 {
			date, err := ts.ParseDate(olderThanDate, now, location)
			if err != nil {
				return predicate.Test{}, err
			}
			tests = append(tests, predicate.IsOlderThanDate(date))
		}
	}

	if perm := v.GetString(flagPerm); len(perm) > 0 {
		mask, err := strconv.ParseUint(perm, 8, 32)
		if err != nil {
			return predicate.Test{}, errors.Errorf("invalid format for perm: %s", perm)
		}
		tests = append(tests, predicate.HasPerm(uint32(mask)))
	}

	if v.GetBool(flagUser) {
		tests = append(tests, predicate.IsOwnedByUser())
	}

	if v.GetBool(flagGroup) {
		tests = append(tests, predicate.IsOwnedByGroup())
	}

	if mime := v.GetString(flagMimeType); len(mime) > 0 {
		tests = append(tests, predicate.HasMimeType(mime))
	}

	if v.GetBool(flagNot) {
		return predicate.Not(predicate.All(tests...)), nil
	}

	return predicate.All(tests...), nil
}

func formatHumanReadableFileSize(size int64) string {
	str := ""
	if size <= int64(math.Pow(2, 10)) {
		str = fmt.Sprintf("%dB", size)
	} else if size <= int64(math.Pow(2, 20)) {
		f := float64(size) / math.Pow(2, 10)
		if f > 10 {
			str = fmt.Sprintf("%.0fK", f)
		} else {
			str = fmt.Sprintf("%.1fK", f)
		}
	} else if size <= int64(math.Pow(2, 30)) {
		str = fmt.Sprintf("%.0fM", float64(size)/math.Pow(2, 20))
	} else {
		str = fmt.Sprintf("%.0fG", float64(size)/math.Pow(2, 30))
	}
	return fmt.Sprintf("%5s", str)
}

func formatFileSize(size int64, humanReadable bool) string {
	if humanReadable {
		return formatHumanReadableFileSize(size)
	}
	return strconv.FormatInt(size, 10)
}

func main() {
	rootCommand := &cobra.Command{
		Use:                   `gofs [flags]`,
		DisableFlagsInUseLine: true,
		Short: strings.Join([]string{
			"gofs is a simple command line program for finding and manipulating files specified by URI.",
			"gofs schemes returns the currently supported schemes.",
			"Local files are specified using the \"file://\" scheme or a path without a scheme.",
			"S3 files are specified using the \"s3://\" scheme.",
		}, "\n"),
	}

	layoutsCommand := &cobra.Command{
		Use:                   `layouts`,
		DisableFlagsInUseLine: true,
		Short:                 "show supported timestamp layouts",
		SilenceErrors:         true,
		SilenceUsage:          true,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range ts.LayoutNames() {
				fmt.Printf("%s: %s\n", name, ts.NamedLayouts[name])
			}
			return nil
		},
	}

	listCommand := &cobra.Command{
		Use:                   "ls [flags] [PATH...]",
		DisableFlagsInUseLine: true,
		Short:                 "list",
		Long:                  "list the entries of each directory",
		SilenceErrors:         true,
		SilenceUsage:          true,
		RunE: func(cmd *cobra.Command, args []string) error {

			ctx := cmd.Context()

			v, logger, err := initCommand(cmd, args, checkListConfig)
			if err != nil {
				return err
			}

			fu := InitFileUtil(ctx, &InitFileUtilInput{
				Viper:    v,
				Logger:   logger,
				ReadOnly: true,
			})

			if len(args) == 0 {
				args = []string{fpath.CurrentDir}
			}

			all := v.GetBool(flagAll)
			long := v.GetBool(flagLong)
			format := v.GetString(flagFormat)
			humanReadableFileSize := v.GetBool(flagHumanReadableFileSize)
			timeLayout := ts.ParseLayout(v.GetString(flagTimeLayout))
			timeZone, err := ts.ParseLocation(v.GetString(flagTimeZone))
			if err != nil {
				return errors.Errorf("error parsing time zone location %q: %w", v.GetString(flagTimeZone), err)
			}

			encoder := json.NewEncoder(os.Stdout)

			for _, dir := range args {
				names, err := fu.Ls(ctx, dir)
				if err != nil {
					return errors.Errorf("error listing %q: %w", dir, err)
				}
				for _, name := range names {
					if !all && strings.HasPrefix(fpath.Basename(name), ".") {
						continue
					}
					if format == "text" && !long {
						fmt.Println(name)
						continue
					}
					fi, err := fu.Stat(ctx, name)
					if err != nil {
						return errors.Errorf("error stating %q: %w", name, err)
					}
					switch format {
					case "text":
						_, _ = fmt.Fprintf(os.Stdout, "%-6s %04o %10s %s %s\n",
							fi.Kind(),
							fi.Perm(),
							formatFileSize(fi.Size(), humanReadableFileSize),
							timeLayout.Format(fi.ModTime().In(timeZone)),
							name)
					case "jsonl":
						m := map[string]any{
							"name":     name,
							"type":     fi.Kind().String(),
							"perm":     fmt.Sprintf("%04o", fi.Perm()),
							"mod_time": timeLayout.Format(fi.ModTime().In(timeZone)),
						}
						if humanReadableFileSize {
							m["size"] = strings.TrimSpace(formatHumanReadableFileSize(fi.Size()))
						} else {
							m["size"] = fi.Size()
						}
						if uid := fi.UID(); uid >= 0 {
							m["uid"] = uid
						}
						if gid := fi.GID(); gid >= 0 {
							m["gid"] = gid
						}
						if err := encoder.Encode(m); err != nil {
							return errors.Errorf("error encoding file info for %q: %w", name, err)
						}
					}
				}
			}

			return nil
		},
	}
	initCommonFlags(listCommand.Flags())
	initListFlags(listCommand.Flags())

	findCommand := &cobra.Command{
		Use:                   "find [flags] [PATH...]",
		DisableFlagsInUseLine: true,
		Short:                 "find",
		Long:                  "find the paths below each root that satisfy every given test",
		SilenceErrors:         true,
		SilenceUsage:          true,
		RunE: func(cmd *cobra.Command, args []string) error {

			ctx := cmd.Context()

			v, logger, err := initCommand(cmd, args, checkFindConfig)
			if err != nil {
				return err
			}

			var matcher predicate.Matcher = predicate.GlobMatcher{}
			if v.GetBool(flagRegex) {
				matcher = predicate.RegexpMatcher{}
			}

			fu := InitFileUtil(ctx, &InitFileUtilInput{
				Viper:    v,
				Logger:   logger,
				Matcher:  matcher,
				ReadOnly: true,
			})

			test, err := initFindTest(ctx, v, fu)
			if err != nil {
				return errors.Errorf("error creating test: %w", err)
			}

			if len(args) == 0 {
				args = []string{fpath.CurrentDir}
			}

			for _, root := range args {
				paths, err := fu.Find(ctx, &fileutil.FindInput{
					Root: root,
					Test: test,
				})
				if err != nil {
					return errors.Errorf("error finding files below %q: %w", root, err)
				}
				for _, p := range paths {
					fmt.Println(p)
				}
			}

			return nil
		},
	}
	initCommonFlags(findCommand.Flags())
	initFindFlags(findCommand.Flags())

	mkdirCommand := &cobra.Command{
		Use:                   "mkdir [flags] PATH...",
		DisableFlagsInUseLine: true,
		Short:                 "mkdir",
		Long:                  "create each directory",
		SilenceErrors:         true,
		SilenceUsage:          true,
		RunE: func(cmd *cobra.Command, args []string) error {

			ctx := cmd.Context()

			v, logger, err := initCommand(cmd, args, func(v *viper.Viper, args []string) error {
				if _, err := strconv.ParseUint(v.GetString(flagMode), 8, 32); err != nil {
					return errors.Errorf("invalid format for mode: %s", v.GetString(flagMode))
				}
				return checkPathsConfig(v, args)
			})
			if err != nil {
				return err
			}

			mode, _ := strconv.ParseUint(v.GetString(flagMode), 8, 32)

			fu := InitFileUtil(ctx, &InitFileUtilInput{
				Viper:  v,
				Logger: logger,
			})

			for _, p := range args {
				err := fu.Mkdir(ctx, &fileutil.MkdirInput{
					Mode:    fs.FileModeOf(uint32(mode)),
					Parents: v.GetBool(flagParents),
					Path:    p,
				})
				if err != nil {
					return errors.Errorf("error creating directory %q: %w", p, err)
				}
			}

			return nil
		},
	}
	initCommonFlags(mkdirCommand.Flags())
	mkdirCommand.Flags().BoolP(flagParents, "p", false, "create parent directories if they do not exist")
	mkdirCommand.Flags().StringP(flagMode, "m", "0755", "permissions for new directories as unix file mode")

	touchCommand := &cobra.Command{
		Use:                   "touch [flags] PATH...",
		DisableFlagsInUseLine: true,
		Short:                 "touch",
		Long:                  "set the modification time of each file, creating empty files that do not exist",
		SilenceErrors:         true,
		SilenceUsage:          true,
		RunE: func(cmd *cobra.Command, args []string) error {

			ctx := cmd.Context()

			v, logger, err := initCommand(cmd, args, checkPathsConfig)
			if err != nil {
				return err
			}

			t := time.Now()
			if date := v.GetString(flagDate); len(date) > 0 {
				location, err := ts.ParseLocation(v.GetString(flagTimeZone))
				if err != nil {
					return errors.Errorf("error parsing time zone location %q: %w", v.GetString(flagTimeZone), err)
				}
				t, err = ts.ParseDate(date, t, location)
				if err != nil {
					return err
				}
			}

			fu := InitFileUtil(ctx, &InitFileUtilInput{
				Viper:  v,
				Logger: logger,
			})

			for _, p := range args {
				err := fu.Touch(ctx, &fileutil.TouchInput{
					NoCreate: v.GetBool(flagNoCreate),
					Path:     p,
					Time:     t,
				})
				if err != nil {
					return errors.Errorf("error touching %q: %w", p, err)
				}
			}

			return nil
		},
	}
	initCommonFlags(touchCommand.Flags())
	touchCommand.Flags().BoolP(flagNoCreate, "c", false, "do not create files that do not exist")
	touchCommand.Flags().String(flagDate, "", "the date to use instead of the current time, or a duration relative to now, e.g., -24h")
	touchCommand.Flags().StringP(flagTimeZone, "z", "Local", "the timezone of the date")

	removeCommand := &cobra.Command{
		Use:                   "rm [flags] PATH...",
		DisableFlagsInUseLine: true,
		Short:                 "rm",
		Long:                  "remove each file or directory",
		SilenceErrors:         true,
		SilenceUsage:          true,
		RunE: func(cmd *cobra.Command, args []string) error {

			ctx := cmd.Context()

			v, logger, err := initCommand(cmd, args, checkPathsConfig)
			if err != nil {
				return err
			}

			fu := InitFileUtil(ctx, &InitFileUtilInput{
				Viper:  v,
				Logger: logger,
			})

			force := v.GetBool(flagForce)
			interactive := initInteractive(v, "remove")

			for _, p := range args {
				err := fu.Remove(ctx, &fileutil.RemoveInput{
					Interactive: interactive,
					Path:        p,
					Recursive:   v.GetBool(flagRecursive),
				})
				if err != nil {
					if force && errors.Is(err, fs.ErrFileDoesNotExist) {
						continue
					}
					return errors.Errorf("error removing %q: %w", p, err)
				}
			}

			return nil
		},
	}
	initCommonFlags(removeCommand.Flags())
	removeCommand.Flags().BoolP(flagRecursive, "r", false, "remove directories and their contents")
	removeCommand.Flags().BoolP(flagInteractive, "i", false, "prompt before every removal")
	removeCommand.Flags().BoolP(flagForce, "f", false, "ignore paths that do not exist")

	copyCommand := &cobra.Command{
		Use:                   "cp [flags] SOURCE DESTINATION",
		DisableFlagsInUseLine: true,
		Short:                 "cp",
		Long:                  "copy source to destination",
		SilenceErrors:         true,
		SilenceUsage:          true,
		RunE: func(cmd *cobra.Command, args []string) error {

			ctx := cmd.Context()

			v, logger, err := initCommand(cmd, args, checkTransferConfig)
			if err != nil {
				return err
			}

			fu := InitFileUtil(ctx, &InitFileUtilInput{
				Viper:  v,
				Logger: logger,
			})

			err = fu.Copy(ctx, &fileutil.CopyInput{
				Destination:        args[1],
				Interactive:        initInteractive(v, "overwrite"),
				PreserveTimestamps: v.GetBool(flagPreserve),
				Recursive:          v.GetBool(flagRecursive),
				Source:             args[0],
			})
			if err != nil {
				return errors.Errorf("error copying %q to %q: %w", args[0], args[1], err)
			}

			return nil
		},
	}
	initCommonFlags(copyCommand.Flags())
	copyCommand.Flags().BoolP(flagRecursive, "r", false, "copy directories recursively")
	copyCommand.Flags().BoolP(flagInteractive, "i", false, "prompt before overwriting an existing file")
	copyCommand.Flags().BoolP(flagPreserve, "p", false, "preserve modification times")

	moveCommand := &cobra.Command{
		Use:                   "mv [flags] SOURCE DESTINATION",
		DisableFlagsInUseLine: true,
		Short:                 "mv",
		Long:                  "move source to destination",
		SilenceErrors:         true,
		SilenceUsage:          true,
		RunE: func(cmd *cobra.Command, args []string) error {

			ctx := cmd.Context()

			v, logger, err := initCommand(cmd, args, checkTransferConfig)
			if err != nil {
				return err
			}

			fu := InitFileUtil(ctx, &InitFileUtilInput{
				Viper:  v,
				Logger: logger,
			})

			err = fu.Move(ctx, &fileutil.MoveInput{
				Destination: args[1],
				Interactive: initInteractive(v, "replace"),
				Source:      args[0],
			})
			if err != nil {
				return errors.Errorf("error moving %q to %q: %w", args[0], args[1], err)
			}

			return nil
		},
	}
	initCommonFlags(moveCommand.Flags())
	moveCommand.Flags().BoolP(flagInteractive, "i", false, "prompt before replacing an existing file")

	whichCommand := &cobra.Command{
		Use:                   "which [flags] NAME...",
		DisableFlagsInUseLine: true,
		Short:                 "which",
		Long:                  "locate each executable in the search path",
		SilenceErrors:         true,
		SilenceUsage:          true,
		RunE: func(cmd *cobra.Command, args []string) error {

			ctx := cmd.Context()

			v, logger, err := initCommand(cmd, args, checkWhichConfig)
			if err != nil {
				return err
			}

			fu := InitFileUtil(ctx, &InitFileUtilInput{
				Viper:    v,
				Logger:   logger,
				ReadOnly: true,
			})

			searchPath := fileutil.SearchPathFromEnv(os.Getenv("PATH"))
			if value := v.GetString(flagSearchPath); len(value) > 0 {
				searchPath = fileutil.SearchPathFromEnv(value)
			}

			paths := make([]string, len(args))
			notFound := make([]bool, len(args))

			g, gctx := errgroup.WithContext(ctx)
			g.SetLimit(v.GetInt(flagThreads))
			for i, name := range args {
				i, name := i, name
				g.Go(func() error {
					p, err := fu.Which(gctx, &fileutil.WhichInput{
						Name:       name,
						SearchPath: searchPath,
					})
					if err != nil {
						if errors.Is(err, fs.ErrNotFound) {
							notFound[i] = true
							return nil
						}
						return errors.Errorf("error locating %q: %w", name, err)
					}
					paths[i] = p
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			count := 0
			for i, name := range args {
				if notFound[i] {
					count++
					_, _ = fmt.Fprintf(os.Stderr, "%s not found\n", name)
					continue
				}
				fmt.Println(paths[i])
			}

			if count > 0 {
				return errors.Errorf("%d of %d names not found", count, len(args))
			}

			return nil
		},
	}
	initCommonFlags(whichCommand.Flags())
	whichCommand.Flags().String(flagSearchPath, "", "list of directories to search, separated like PATH.  Defaults to PATH.")
	whichCommand.Flags().Int(flagThreads, -1, "maximum number of names located in parallel.  -1 is unlimited.")

	duCommand := &cobra.Command{
		Use:                   "du [flags] [PATH...]",
		DisableFlagsInUseLine: true,
		Short:                 "du",
		Long:                  "summarize the size of the regular files below each path",
		SilenceErrors:         true,
		SilenceUsage:          true,
		RunE: func(cmd *cobra.Command, args []string) error {

			ctx := cmd.Context()

			v, logger, err := initCommand(cmd, args, checkListConfig)
			if err != nil {
				return err
			}

			fu := InitFileUtil(ctx, &InitFileUtilInput{
				Viper:    v,
				Logger:   logger,
				ReadOnly: true,
			})

			if len(args) == 0 {
				args = []string{fpath.CurrentDir}
			}

			usages, total, err := fu.Du(ctx, args...)
			if err != nil {
				return errors.Errorf("error summarizing disk usage: %w", err)
			}

			humanReadableFileSize := v.GetBool(flagHumanReadableFileSize)

			switch v.GetString(flagFormat) {
			case "text":
				for _, usage := range usages {
					_, _ = fmt.Fprintf(os.Stdout, "%s\t%s\n", formatFileSize(usage.Size, humanReadableFileSize), usage.Path)
				}
				if len(usages) > 1 {
					_, _ = fmt.Fprintf(os.Stdout, "%s\t%s\n", formatFileSize(total, humanReadableFileSize), "total")
				}
			case "jsonl":
				encoder := json.NewEncoder(os.Stdout)
				for _, usage := range usages {
					if err := encoder.Encode(map[string]any{
						"path":  usage.Path,
						"files": usage.Files,
						"size":  usage.Size,
					}); err != nil {
						return errors.Errorf("error encoding disk usage for %q: %w", usage.Path, err)
					}
				}
			}

			return nil
		},
	}
	initCommonFlags(duCommand.Flags())
	duCommand.Flags().StringP(flagFormat, "f", DefaultFormat, "output format.  Either jsonl or text.")
	duCommand.Flags().Bool(flagHumanReadableFileSize, false, "display file sizes in human-readable format")

	schemesCommand := &cobra.Command{
		Use:                   `schemes`,
		DisableFlagsInUseLine: true,
		Short:                 "show supported schemes",
		SilenceErrors:         true,
		SilenceUsage:          true,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("file")
			fmt.Println("s3")
			return nil
		},
	}

	versionCommand := &cobra.Command{
		Use:                   `version`,
		DisableFlagsInUseLine: true,
		Short:                 "show version",
		SilenceErrors:         true,
		SilenceUsage:          true,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(GoFSVersion)
			return nil
		},
	}

	rootCommand.AddCommand(
		layoutsCommand,
		listCommand,
		findCommand,
		mkdirCommand,
		touchCommand,
		removeCommand,
		copyCommand,
		moveCommand,
		whichCommand,
		duCommand,
		schemesCommand,
		versionCommand,
	)

	if err := rootCommand.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "gofs: "+err.Error())
		fmt.Fprintln(os.Stderr, "Try \"gofs --help\" for more information.")
		os.Exit(1)
	}
}
